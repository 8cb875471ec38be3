package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

// syncColumns are the four reconciliation columns shared by every
// entity relation, in storage order.
var syncColumns = []string{"sync_status", "synced_at", "local_updated_at", "server_updated_at"}

// syncArgs renders sync metadata in syncColumns order.
func syncArgs(m *domain.SyncMeta) []any {
	return []any{
		string(m.SyncStatus),
		formatNullableTime(m.SyncedAt),
		formatTime(m.LocalUpdatedAt),
		formatNullableTime(m.ServerUpdatedAt),
	}
}

// buildSyncMeta reconstructs sync metadata from scanned column values.
func buildSyncMeta(status string, syncedAt sql.NullString, localUpdated string, serverUpdated sql.NullString) (domain.SyncMeta, error) {
	sa, err := parseNullableTime(syncedAt)
	if err != nil {
		return domain.SyncMeta{}, err
	}
	lu, err := parseTime(localUpdated)
	if err != nil {
		return domain.SyncMeta{}, err
	}
	su, err := parseNullableTime(serverUpdated)
	if err != nil {
		return domain.SyncMeta{}, err
	}
	return domain.SyncMeta{
		SyncStatus:      domain.SyncStatus(status),
		SyncedAt:        sa,
		LocalUpdatedAt:  lu,
		ServerUpdatedAt: su,
	}, nil
}

var noteTable = table[domain.Note, domain.NotePatch]{
	name:     "notes",
	ownerCol: "owner_id",
	columns: append([]string{
		"id", "owner_id", "slug", "title", "description", "visibility",
		"created_at", "updated_at", "is_trashed", "trashed_at",
	}, syncColumns...),
	scan: func(s scanner) (domain.Note, error) {
		var n domain.Note
		var description, trashedAt, syncedAt, serverUpdated sql.NullString
		var visibility, createdAt, updatedAt, status, localUpdated string
		err := s.Scan(
			&n.ID, &n.OwnerID, &n.Slug, &n.Title, &description, &visibility,
			&createdAt, &updatedAt, &n.IsTrashed, &trashedAt,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return n, err
		}
		n.Description = fromNullString(description)
		n.Visibility = domain.Visibility(visibility)
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return n, err
		}
		if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return n, err
		}
		if n.TrashedAt, err = parseNullableTime(trashedAt); err != nil {
			return n, err
		}
		n.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return n, err
	},
	args: func(n *domain.Note) []any {
		return append([]any{
			n.ID, n.OwnerID, n.Slug, n.Title, nullString(n.Description), string(n.Visibility),
			formatTime(n.CreatedAt), formatTime(n.UpdatedAt),
			boolToInt(n.IsTrashed), formatNullableTime(n.TrashedAt),
		}, syncArgs(&n.SyncMeta)...)
	},
	id:         (*domain.Note).EntityID,
	meta:       (*domain.Note).Meta,
	remoteTime: (*domain.Note).RemoteUpdatedAt,
	touch:      (*domain.Note).Touch,
	apply:      (*domain.Note).Apply,
}

var pageTable = table[domain.Page, domain.PagePatch]{
	name:     "pages",
	ownerCol: "user_id",
	columns: append([]string{
		"id", "user_id", "note_id", "title", "thumbnail_url", "is_public",
		"scrapbox_page_id", "scrapbox_page_list_synced_at", "scrapbox_page_content_synced_at",
		"created_at", "updated_at",
	}, syncColumns...),
	scan: func(s scanner) (domain.Page, error) {
		var p domain.Page
		var noteID, thumbnail, scrapboxID, listSynced, contentSynced, syncedAt, serverUpdated sql.NullString
		var createdAt, updatedAt, status, localUpdated string
		err := s.Scan(
			&p.ID, &p.UserID, &noteID, &p.Title, &thumbnail, &p.IsPublic,
			&scrapboxID, &listSynced, &contentSynced,
			&createdAt, &updatedAt,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return p, err
		}
		p.NoteID = fromNullString(noteID)
		p.ThumbnailURL = fromNullString(thumbnail)
		p.ScrapboxPageID = fromNullString(scrapboxID)
		if p.ScrapboxListSyncedAt, err = parseNullableTime(listSynced); err != nil {
			return p, err
		}
		if p.ScrapboxContentSyncedAt, err = parseNullableTime(contentSynced); err != nil {
			return p, err
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return p, err
		}
		if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return p, err
		}
		p.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return p, err
	},
	args: func(p *domain.Page) []any {
		return append([]any{
			p.ID, p.UserID, nullString(p.NoteID), p.Title, nullString(p.ThumbnailURL),
			boolToInt(p.IsPublic), nullString(p.ScrapboxPageID),
			formatNullableTime(p.ScrapboxListSyncedAt), formatNullableTime(p.ScrapboxContentSyncedAt),
			formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
		}, syncArgs(&p.SyncMeta)...)
	},
	id:         (*domain.Page).EntityID,
	meta:       (*domain.Page).Meta,
	remoteTime: (*domain.Page).RemoteUpdatedAt,
	touch:      (*domain.Page).Touch,
	apply:      (*domain.Page).Apply,
}

var deckTable = table[domain.Deck, domain.DeckPatch]{
	name:     "decks",
	ownerCol: "user_id",
	columns: append([]string{
		"id", "user_id", "title", "description", "is_public", "created_at", "updated_at",
	}, syncColumns...),
	scan: func(s scanner) (domain.Deck, error) {
		var d domain.Deck
		var description, syncedAt, serverUpdated sql.NullString
		var createdAt, updatedAt, status, localUpdated string
		err := s.Scan(
			&d.ID, &d.UserID, &d.Title, &description, &d.IsPublic,
			&createdAt, &updatedAt,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return d, err
		}
		d.Description = fromNullString(description)
		if d.CreatedAt, err = parseTime(createdAt); err != nil {
			return d, err
		}
		if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return d, err
		}
		d.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return d, err
	},
	args: func(d *domain.Deck) []any {
		return append([]any{
			d.ID, d.UserID, d.Title, nullString(d.Description), boolToInt(d.IsPublic),
			formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
		}, syncArgs(&d.SyncMeta)...)
	},
	id:         (*domain.Deck).EntityID,
	meta:       (*domain.Deck).Meta,
	remoteTime: (*domain.Deck).RemoteUpdatedAt,
	touch:      (*domain.Deck).Touch,
	apply:      (*domain.Deck).Apply,
}

var cardTable = table[domain.Card, domain.CardPatch]{
	name:     "cards",
	ownerCol: "user_id",
	columns: append([]string{
		"id", "deck_id", "user_id", "front_content", "back_content",
		"source_audio_url", "source_ocr_image_url", "created_at", "updated_at",
		"ease_factor", "repetition_count", "review_interval", "next_review_at",
		"stability", "difficulty", "last_reviewed_at",
	}, syncColumns...),
	scan: func(s scanner) (domain.Card, error) {
		var c domain.Card
		var audioURL, ocrURL, nextReview, lastReviewed, syncedAt, serverUpdated sql.NullString
		var createdAt, updatedAt, status, localUpdated string
		err := s.Scan(
			&c.ID, &c.DeckID, &c.UserID, &c.FrontContent, &c.BackContent,
			&audioURL, &ocrURL, &createdAt, &updatedAt,
			&c.EaseFactor, &c.RepetitionCount, &c.ReviewInterval, &nextReview,
			&c.Stability, &c.Difficulty, &lastReviewed,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return c, err
		}
		c.SourceAudioURL = fromNullString(audioURL)
		c.SourceOCRImageURL = fromNullString(ocrURL)
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return c, err
		}
		if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return c, err
		}
		if c.NextReviewAt, err = parseNullableTime(nextReview); err != nil {
			return c, err
		}
		if c.LastReviewedAt, err = parseNullableTime(lastReviewed); err != nil {
			return c, err
		}
		c.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return c, err
	},
	args: func(c *domain.Card) []any {
		return append([]any{
			c.ID, c.DeckID, c.UserID, c.FrontContent, c.BackContent,
			nullString(c.SourceAudioURL), nullString(c.SourceOCRImageURL),
			formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
			c.EaseFactor, c.RepetitionCount, c.ReviewInterval, formatNullableTime(c.NextReviewAt),
			c.Stability, c.Difficulty, formatNullableTime(c.LastReviewedAt),
		}, syncArgs(&c.SyncMeta)...)
	},
	id:         (*domain.Card).EntityID,
	meta:       (*domain.Card).Meta,
	remoteTime: (*domain.Card).RemoteUpdatedAt,
	touch:      (*domain.Card).Touch,
	apply:      (*domain.Card).Apply,
}

var studyGoalTable = table[domain.StudyGoal, domain.StudyGoalPatch]{
	name:     "study_goals",
	ownerCol: "user_id",
	columns: append([]string{
		"id", "user_id", "title", "description", "created_at", "updated_at",
		"deadline", "progress_rate", "status", "completed_at",
	}, syncColumns...),
	scan: func(s scanner) (domain.StudyGoal, error) {
		var g domain.StudyGoal
		var description, deadline, completedAt, syncedAt, serverUpdated sql.NullString
		var createdAt, updatedAt, goalStatus, status, localUpdated string
		err := s.Scan(
			&g.ID, &g.UserID, &g.Title, &description, &createdAt, &updatedAt,
			&deadline, &g.ProgressRate, &goalStatus, &completedAt,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return g, err
		}
		g.Description = fromNullString(description)
		g.Status = domain.GoalStatus(goalStatus)
		if g.CreatedAt, err = parseTime(createdAt); err != nil {
			return g, err
		}
		if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return g, err
		}
		if g.Deadline, err = parseNullableTime(deadline); err != nil {
			return g, err
		}
		if g.CompletedAt, err = parseNullableTime(completedAt); err != nil {
			return g, err
		}
		g.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return g, err
	},
	args: func(g *domain.StudyGoal) []any {
		return append([]any{
			g.ID, g.UserID, g.Title, nullString(g.Description),
			formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
			formatNullableTime(g.Deadline), g.ProgressRate, string(g.Status),
			formatNullableTime(g.CompletedAt),
		}, syncArgs(&g.SyncMeta)...)
	},
	id:         (*domain.StudyGoal).EntityID,
	meta:       (*domain.StudyGoal).Meta,
	remoteTime: (*domain.StudyGoal).RemoteUpdatedAt,
	touch:      (*domain.StudyGoal).Touch,
	apply:      (*domain.StudyGoal).Apply,
}

var milestoneTable = table[domain.Milestone, domain.MilestonePatch]{
	name:     "milestones",
	ownerCol: "goal_id",
	columns: append([]string{
		"id", "goal_id", "title", "description", "due_date", "is_completed",
		"created_at", "updated_at",
	}, syncColumns...),
	scan: func(s scanner) (domain.Milestone, error) {
		var m domain.Milestone
		var description, dueDate, syncedAt, serverUpdated sql.NullString
		var createdAt, updatedAt, status, localUpdated string
		err := s.Scan(
			&m.ID, &m.GoalID, &m.Title, &description, &dueDate, &m.IsCompleted,
			&createdAt, &updatedAt,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return m, err
		}
		m.Description = fromNullString(description)
		if m.DueDate, err = parseNullableTime(dueDate); err != nil {
			return m, err
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return m, err
		}
		if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return m, err
		}
		m.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return m, err
	},
	args: func(m *domain.Milestone) []any {
		return append([]any{
			m.ID, m.GoalID, m.Title, nullString(m.Description),
			formatNullableTime(m.DueDate), boolToInt(m.IsCompleted),
			formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
		}, syncArgs(&m.SyncMeta)...)
	},
	id:         (*domain.Milestone).EntityID,
	meta:       (*domain.Milestone).Meta,
	remoteTime: (*domain.Milestone).RemoteUpdatedAt,
	touch:      (*domain.Milestone).Touch,
	apply:      (*domain.Milestone).Apply,
}

var learningLogTable = table[domain.LearningLog, domain.LearningLogPatch]{
	name:     "learning_logs",
	ownerCol: "user_id",
	columns: append([]string{
		"id", "user_id", "card_id", "question_id", "answered_at", "is_correct",
		"user_answer", "practice_mode", "review_interval", "next_review_at",
		"quality", "response_time", "effort_time", "attempt_count",
	}, syncColumns...),
	scan: func(s scanner) (domain.LearningLog, error) {
		var l domain.LearningLog
		var questionID, userAnswer, nextReview, syncedAt, serverUpdated sql.NullString
		var reviewInterval sql.NullInt64
		var answeredAt, practiceMode, status, localUpdated string
		err := s.Scan(
			&l.ID, &l.UserID, &l.CardID, &questionID, &answeredAt, &l.IsCorrect,
			&userAnswer, &practiceMode, &reviewInterval, &nextReview,
			&l.Quality, &l.ResponseTime, &l.EffortTime, &l.AttemptCount,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return l, err
		}
		l.QuestionID = fromNullString(questionID)
		l.UserAnswer = fromNullString(userAnswer)
		l.PracticeMode = domain.PracticeMode(practiceMode)
		l.ReviewInterval = fromNullInt(reviewInterval)
		if l.AnsweredAt, err = parseTime(answeredAt); err != nil {
			return l, err
		}
		if l.NextReviewAt, err = parseNullableTime(nextReview); err != nil {
			return l, err
		}
		l.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return l, err
	},
	args: func(l *domain.LearningLog) []any {
		return append([]any{
			l.ID, l.UserID, l.CardID, nullString(l.QuestionID),
			formatTime(l.AnsweredAt), boolToInt(l.IsCorrect),
			nullString(l.UserAnswer), string(l.PracticeMode),
			nullInt(l.ReviewInterval), formatNullableTime(l.NextReviewAt),
			l.Quality, l.ResponseTime, l.EffortTime, l.AttemptCount,
		}, syncArgs(&l.SyncMeta)...)
	},
	id:         (*domain.LearningLog).EntityID,
	meta:       (*domain.LearningLog).Meta,
	remoteTime: (*domain.LearningLog).RemoteUpdatedAt,
	touch:      (*domain.LearningLog).Touch,
	apply:      (*domain.LearningLog).Apply,
}

var userSettingsTable = table[domain.UserSettings, domain.UserSettingsPatch]{
	name:     "user_settings",
	ownerCol: "user_id",
	columns: append([]string{
		"id", "user_id", "theme", "mode", "locale", "timezone", "notifications",
		"items_per_page", "play_help_video_audio",
		"cosense_sync_enabled", "notion_sync_enabled", "gyazo_sync_enabled", "quizlet_sync_enabled",
		"created_at", "updated_at",
	}, syncColumns...),
	scan: func(s scanner) (domain.UserSettings, error) {
		var u domain.UserSettings
		var syncedAt, serverUpdated sql.NullString
		var theme, mode, notifications, createdAt, updatedAt, status, localUpdated string
		err := s.Scan(
			&u.ID, &u.UserID, &theme, &mode, &u.Locale, &u.Timezone, &notifications,
			&u.ItemsPerPage, &u.PlayHelpVideoAudio,
			&u.CosenseSyncEnabled, &u.NotionSyncEnabled, &u.GyazoSyncEnabled, &u.QuizletSyncEnabled,
			&createdAt, &updatedAt,
			&status, &syncedAt, &localUpdated, &serverUpdated,
		)
		if err != nil {
			return u, err
		}
		u.Theme = domain.Theme(theme)
		u.Mode = domain.DisplayMode(mode)
		if err := json.Unmarshal([]byte(notifications), &u.Notifications); err != nil {
			return u, fmt.Errorf("%w: parsing notifications: %v", domain.ErrSerialization, err)
		}
		if u.CreatedAt, err = parseTime(createdAt); err != nil {
			return u, err
		}
		if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return u, err
		}
		u.SyncMeta, err = buildSyncMeta(status, syncedAt, localUpdated, serverUpdated)
		return u, err
	},
	args: func(u *domain.UserSettings) []any {
		return append([]any{
			u.ID, u.UserID, string(u.Theme), string(u.Mode), u.Locale, u.Timezone,
			marshalNotifications(u.Notifications),
			u.ItemsPerPage, boolToInt(u.PlayHelpVideoAudio),
			boolToInt(u.CosenseSyncEnabled), boolToInt(u.NotionSyncEnabled),
			boolToInt(u.GyazoSyncEnabled), boolToInt(u.QuizletSyncEnabled),
			formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
		}, syncArgs(&u.SyncMeta)...)
	},
	id:         (*domain.UserSettings).EntityID,
	meta:       (*domain.UserSettings).Meta,
	remoteTime: (*domain.UserSettings).RemoteUpdatedAt,
	touch:      (*domain.UserSettings).Touch,
	apply:      (*domain.UserSettings).Apply,
}

// marshalNotifications renders the notifications map as a JSON object.
// A nil map stores as the empty object.
func marshalNotifications(m map[string]bool) string {
	if m == nil {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
