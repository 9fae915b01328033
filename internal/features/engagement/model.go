// Package engagement aggregates views, history, completions and
// comments into the per-content stats panel and the role-dependent
// dashboard.
package engagement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/comment"
	"github.com/eduflow/eduflow-server/internal/features/completion"
	"github.com/eduflow/eduflow-server/internal/features/content"
	"github.com/eduflow/eduflow-server/internal/features/history"
	"github.com/eduflow/eduflow-server/internal/features/profile"
	"github.com/eduflow/eduflow-server/pkg/types"
)

// Point and minute weights for learner activity.
const (
	pointsPerVisit      = 5
	pointsPerCompletion = 50
	pointsPerComment    = 10

	minutesPerVisit      = 5
	minutesPerCompletion = 30
)

const recommendationLimit = 4

// ViewerStat is one deduplicated viewer of a content: the profile,
// their most recent visit, and whether they finished it.
type ViewerStat struct {
	Profile     profile.Profile `json:"profile"`
	AccessedAt  time.Time       `json:"accessedAt"`
	IsCompleted bool            `json:"isCompleted"`
}

// ContentStats is the author-facing engagement panel for one content.
type ContentStats struct {
	Views    int64             `json:"views"`
	Viewers  []ViewerStat      `json:"viewers"`
	Comments []comment.Comment `json:"comments"`
}

// StatsForContent assembles the engagement panel. Views come from the
// stored counter; the viewer list is history deduplicated to one entry
// per user carrying their latest access, annotated with completion.
func StatsForContent(db *gorm.DB, row content.Content) (ContentStats, error) {
	viewers, err := history.ViewersForContent(db, row.ID)
	if err != nil {
		return ContentStats{}, err
	}

	completedBy, err := completion.CompletedUserSet(db, row.ID)
	if err != nil {
		return ContentStats{}, err
	}

	stats := ContentStats{
		Views:   row.Views,
		Viewers: make([]ViewerStat, 0, len(viewers)),
	}

	for _, v := range viewers {
		p, err := profile.Get(db, v.UserID)
		if err != nil {
			if err == profile.ErrProfileNotFound {
				continue
			}
			return ContentStats{}, err
		}

		_, completed := completedBy[v.UserID]
		stats.Viewers = append(stats.Viewers, ViewerStat{
			Profile:     p,
			AccessedAt:  v.AccessedAt,
			IsCompleted: completed,
		})
	}

	stats.Comments, err = comment.ListForContent(db, row.ID)
	if err != nil {
		return ContentStats{}, err
	}

	return stats, nil
}

// VisitedContent is a recently visited content annotated with whether
// the learner finished it.
type VisitedContent struct {
	content.Content
	Completed bool `json:"completed"`
}

// LearnerSummary aggregates a learner's activity.
type LearnerSummary struct {
	VisitedCount    int64            `json:"visitedCount"`
	CompletedCount  int64            `json:"completedCount"`
	CommentCount    int64            `json:"commentCount"`
	Points          int64            `json:"points"`
	Minutes         int64            `json:"minutes"`
	TimeSpentLabel  string           `json:"timeSpentLabel"`
	RecentlyVisited []VisitedContent `json:"recentlyVisited"`
}

// LearnerDashboard computes the learner counters and formulas:
// points = 5*visited + 50*completed + 10*comments, minutes =
// 5*visited + 30*completed, labelled in hours once past sixty.
func LearnerDashboard(db *gorm.DB, userID uuid.UUID) (LearnerSummary, error) {
	visited, err := history.DistinctContentCount(db, userID)
	if err != nil {
		return LearnerSummary{}, err
	}

	completed, err := completion.CountForUser(db, userID)
	if err != nil {
		return LearnerSummary{}, err
	}

	comments, err := comment.CountForUser(db, userID)
	if err != nil {
		return LearnerSummary{}, err
	}

	minutes := learnerMinutes(visited, completed)

	summary := LearnerSummary{
		VisitedCount:   visited,
		CompletedCount: completed,
		CommentCount:   comments,
		Points:         learnerPoints(visited, completed, comments),
		Minutes:        minutes,
		TimeSpentLabel: FormatTimeSpent(minutes),
	}

	recentIDs, err := history.RecentContentIDs(db, userID, recommendationLimit)
	if err != nil {
		return LearnerSummary{}, err
	}
	recent, err := content.ByIDs(db, recentIDs)
	if err != nil {
		return LearnerSummary{}, err
	}

	done, err := completion.CompletedSet(db, userID)
	if err != nil {
		return LearnerSummary{}, err
	}
	summary.RecentlyVisited = annotateCompleted(recent, done)

	return summary, nil
}

// annotateCompleted marks each recent content with the learner's
// completion state.
func annotateCompleted(rows []content.Content, done map[uuid.UUID]struct{}) []VisitedContent {
	visited := make([]VisitedContent, 0, len(rows))
	for _, row := range rows {
		_, completed := done[row.ID]
		visited = append(visited, VisitedContent{Content: row, Completed: completed})
	}
	return visited
}

func learnerPoints(visited, completed, comments int64) int64 {
	return pointsPerVisit*visited + pointsPerCompletion*completed + pointsPerComment*comments
}

func learnerMinutes(visited, completed int64) int64 {
	return minutesPerVisit*visited + minutesPerCompletion*completed
}

// FormatTimeSpent renders minutes as "Nm" or "Xh Ym" once past an hour.
func FormatTimeSpent(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Dashboard is the role-dependent home payload. Exactly one of the
// role summaries is set.
type Dashboard struct {
	Role            types.Role              `json:"role"`
	Creator         *content.CreatorSummary `json:"creator,omitempty"`
	Learner         *LearnerSummary         `json:"learner,omitempty"`
	Recommendations []content.Content       `json:"recommendations"`
}

// BuildDashboard assembles the dashboard for a profile. Creators get
// catalog counters; learners get activity points and recent contents;
// both get the latest published recommendations.
func BuildDashboard(db *gorm.DB, p profile.Profile) (Dashboard, error) {
	dash := Dashboard{Role: p.Role}

	switch p.Role {
	case types.RoleCreator, types.RoleAdmin:
		summary, err := content.SummarizeCreator(db, p.ID)
		if err != nil {
			return Dashboard{}, err
		}
		dash.Creator = &summary
	default:
		summary, err := LearnerDashboard(db, p.ID)
		if err != nil {
			return Dashboard{}, err
		}
		dash.Learner = &summary
	}

	recs, err := content.LatestPublished(db, recommendationLimit)
	if err != nil {
		return Dashboard{}, err
	}
	dash.Recommendations = recs

	return dash, nil
}
