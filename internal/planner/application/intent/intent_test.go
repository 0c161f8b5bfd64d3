package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
)

func TestParse_CreateTask(t *testing.T) {
	payload := []byte(`{
		"kind": "create_task",
		"title": "Deep work",
		"duration_min": 90,
		"category": "work",
		"when": {"time_of_day": "09:00"}
	}`)

	in, err := intent.Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, intent.KindCreateTask, in.Kind)
	assert.Equal(t, "Deep work", in.Title)
	assert.Equal(t, 90, in.DurationMin)
	require.NotNil(t, in.When)
	assert.Equal(t, "09:00", in.When.TimeOfDay)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := intent.Parse([]byte(`{"kind": "create_task", "title": "x", "duration_min": 5, "priority": "high"}`))
	assert.ErrorIs(t, err, intent.ErrMalformedIntent)
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := intent.Parse([]byte(`{"kind": `))
	assert.ErrorIs(t, err, intent.ErrMalformedIntent)
}

func TestValidate(t *testing.T) {
	ref := "jog"
	tests := []struct {
		name    string
		in      intent.Intent
		wantErr error
	}{
		{
			name:    "unknown kind",
			in:      intent.Intent{Kind: "defragment_day"},
			wantErr: intent.ErrUnknownKind,
		},
		{
			name:    "create without title",
			in:      intent.Intent{Kind: intent.KindCreateTask, DurationMin: 30},
			wantErr: intent.ErrMissingField,
		},
		{
			name:    "create without duration",
			in:      intent.Intent{Kind: intent.KindCreateTask, Title: "x"},
			wantErr: intent.ErrMissingField,
		},
		{
			name: "create valid",
			in:   intent.Intent{Kind: intent.KindCreateTask, Title: "x", DurationMin: 30},
		},
		{
			name:    "complete without reference",
			in:      intent.Intent{Kind: intent.KindCompleteTask},
			wantErr: intent.ErrMissingField,
		},
		{
			name:    "reschedule without when",
			in:      intent.Intent{Kind: intent.KindRescheduleTask, Reference: ref},
			wantErr: intent.ErrMissingField,
		},
		{
			name: "reschedule valid",
			in: intent.Intent{
				Kind:      intent.KindRescheduleTask,
				Reference: ref,
				When:      &intent.TimeSpec{InMinutes: 30},
			},
		},
		{
			name: "rearrange needs nothing",
			in:   intent.Intent{Kind: intent.KindRearrangeDay},
		},
		{
			name:    "clarification without message",
			in:      intent.Intent{Kind: intent.KindClarification},
			wantErr: intent.ErrMissingField,
		},
		{
			name: "infeasible valid",
			in:   intent.Intent{Kind: intent.KindInfeasible, Message: "day is full"},
		},
		{
			name: "bad nested time spec",
			in: intent.Intent{
				Kind:  intent.KindCreateTask,
				Title: "x", DurationMin: 30,
				When: &intent.TimeSpec{TimeOfDay: "25:99"},
			},
			wantErr: intent.ErrUnresolvableTime,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
