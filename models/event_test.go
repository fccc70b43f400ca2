package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/TheVovchenskiy/sportify-tg-bot/models"
	"github.com/TheVovchenskiy/sportify-tg-bot/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalEventJSON = `{
	"id": "e1",
	"creator": {"id": "u1", "username": "alice"},
	"sport_type": "football",
	"address": "Main St",
	"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z"},
	"is_free": true,
	"game_levels": [],
	"busy": 0,
	"subscribers": []
}`

const fullEventJSON = `{
	"id": "e2",
	"creator": {"id": "u1", "username": "alice", "tg_id": 42},
	"sport_type": "basketball",
	"address": "Parkstraße 1",
	"date_and_time": {
		"date": "2024-11-24T00:00:00Z",
		"start_time": "2024-01-01T09:00:00Z",
		"end_time": "2024-01-01T11:00:00Z"
	},
	"price": 700,
	"is_free": false,
	"game_levels": ["mid", "high"],
	"capacity": 12,
	"busy": 3,
	"subscribers": [{"id": "u2", "username": "bob", "tg_id": 7}],
	"description": "Придём пораньше!",
	"url_preview": "https://example.com/preview.png",
	"latitude": "55.75",
	"longitude": "37.61",
	"hashtags": ["#баскетбол", "#платно"]
}`

func TestBotEventUnmarshalMinimal(t *testing.T) {
	t.Parallel()

	var event models.BotEvent
	require.NoError(t, json.Unmarshal([]byte(minimalEventJSON), &event))

	assert.Equal(t, "e1", event.ID)
	assert.Equal(t, "u1", event.Creator.ID)
	assert.Equal(t, "alice", event.Creator.Username)
	assert.Nil(t, event.Creator.TgID)
	assert.Equal(t, models.SportTypeFootball, event.SportType)
	assert.Equal(t, "Main St", event.Address)
	assert.Equal(t, time.Date(2024, 11, 24, 0, 0, 0, 0, time.UTC), event.DateAndTime.Date)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), event.DateAndTime.StartTime)
	assert.Nil(t, event.DateAndTime.EndTime)
	assert.True(t, event.IsFree)
	assert.Empty(t, event.GameLevels)
	assert.NotNil(t, event.GameLevels)
	assert.Zero(t, event.Busy)
	assert.Empty(t, event.Subscribers)
	assert.Nil(t, event.Capacity)
	assert.Nil(t, event.Description)
}

func TestBotEventUnmarshalFull(t *testing.T) {
	t.Parallel()

	var event models.BotEvent
	require.NoError(t, json.Unmarshal([]byte(fullEventJSON), &event))

	assert.Equal(t, "e2", event.ID)
	assert.Equal(t, common.Ref(int64(42)), event.Creator.TgID)
	assert.Equal(t, common.Ref(700), event.Price)
	assert.False(t, event.IsFree)
	assert.Equal(t, []models.GameLevel{models.GameLevelMid, models.GameLevelHigh}, event.GameLevels)
	assert.Equal(t, common.Ref(12), event.Capacity)
	assert.Equal(t, 3, event.Busy)
	require.Len(t, event.Subscribers, 1)
	assert.Equal(t, "bob", event.Subscribers[0].Username)
	assert.Equal(t, common.Ref("Придём пораньше!"), event.Description)
	assert.Equal(t, common.Ref("https://example.com/preview.png"), event.URLPreview)
	assert.Equal(t, []string{"#баскетбол", "#платно"}, event.Hashtags)

	require.NotNil(t, event.DateAndTime.EndTime)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), *event.DateAndTime.EndTime)
}

func TestBotEventUnmarshalDefects(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		raw     string
		wantErr error
	}{
		"missing_creator": {
			raw: `{"id": "e1", "sport_type": "football", "address": "a",
				"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": []}`,
			wantErr: models.ErrMissingField,
		},
		"missing_sport_type": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "address": "a",
				"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": []}`,
			wantErr: models.ErrMissingField,
		},
		"missing_busy": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "sport_type": "football",
				"address": "a",
				"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z"},
				"is_free": true, "game_levels": [], "subscribers": []}`,
			wantErr: models.ErrMissingField,
		},
		"missing_subscribers": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "sport_type": "football",
				"address": "a",
				"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z"},
				"is_free": true, "game_levels": [], "busy": 0}`,
			wantErr: models.ErrMissingField,
		},
		"creator_missing_username": {
			raw: `{"id": "e1", "creator": {"id": "u1"}, "sport_type": "football", "address": "a",
				"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": []}`,
			wantErr: models.ErrMissingField,
		},
		"subscriber_missing_id": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "sport_type": "football",
				"address": "a",
				"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": [{"username": "bob"}]}`,
			wantErr: models.ErrMissingField,
		},
		"missing_date": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "sport_type": "football",
				"address": "a", "date_and_time": {"start_time": "2024-01-01T09:00:00Z"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": []}`,
			wantErr: models.ErrMalformedTimestamp,
		},
		"missing_start_time": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "sport_type": "football",
				"address": "a", "date_and_time": {"date": "2024-11-24T00:00:00Z"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": []}`,
			wantErr: models.ErrMalformedTimestamp,
		},
		"unparsable_start_time": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "sport_type": "football",
				"address": "a", "date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "09:00"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": []}`,
			wantErr: models.ErrMalformedTimestamp,
		},
		"unparsable_end_time": {
			raw: `{"id": "e1", "creator": {"id": "u1", "username": "alice"}, "sport_type": "football",
				"address": "a",
				"date_and_time": {"date": "2024-11-24T00:00:00Z", "start_time": "2024-01-01T09:00:00Z", "end_time": "later"},
				"is_free": true, "game_levels": [], "busy": 0, "subscribers": []}`,
			wantErr: models.ErrMalformedTimestamp,
		},
	}

	for name, tc := range testCases {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var event models.BotEvent

			err := json.Unmarshal([]byte(tc.raw), &event)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEventCreatedBotRequestChatID(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		raw        string
		wantChatID int64
		wantErr    bool
	}{
		"quoted_chat_id": {
			raw:        `{"tg_chat_id": "1", "event": ` + minimalEventJSON + `}`,
			wantChatID: 1,
		},
		"bare_chat_id": {
			raw:        `{"tg_chat_id": -100123, "event": ` + minimalEventJSON + `}`,
			wantChatID: -100123,
		},
		"not_a_number": {
			raw:     `{"tg_chat_id": "group", "event": ` + minimalEventJSON + `}`,
			wantErr: true,
		},
	}

	for name, tc := range testCases {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var request models.EventCreatedBotRequest

			err := json.Unmarshal([]byte(tc.raw), &request)

			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.NoError(t, request.Validate())
			assert.Equal(t, tc.wantChatID, int64(*request.TgChatID))
		})
	}
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("created_missing_tg_chat_id", func(t *testing.T) {
		t.Parallel()

		var request models.EventCreatedBotRequest
		require.NoError(t, json.Unmarshal([]byte(`{"event": `+minimalEventJSON+`}`), &request))
		require.ErrorIs(t, request.Validate(), models.ErrMissingField)
	})

	t.Run("created_missing_event", func(t *testing.T) {
		t.Parallel()

		var request models.EventCreatedBotRequest
		require.NoError(t, json.Unmarshal([]byte(`{"tg_chat_id": 1}`), &request))
		require.ErrorIs(t, request.Validate(), models.ErrMissingField)
	})

	t.Run("updated_missing_event", func(t *testing.T) {
		t.Parallel()

		var request models.EventUpdatedBotRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &request))
		require.ErrorIs(t, request.Validate(), models.ErrMissingField)
	})

	t.Run("deleted_missing_event_id", func(t *testing.T) {
		t.Parallel()

		var request models.EventDeletedBotRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &request))
		require.ErrorIs(t, request.Validate(), models.ErrMissingField)
	})
}
