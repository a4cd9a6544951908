package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workdesk/work-control-api/internal/models"
)

func TestAuthorizeCreate(t *testing.T) {
	record := &models.WorkRecord{
		Executors:   []string{"Alice", "Bob"},
		Controllers: []string{"Carl"},
		Approver:    "Dunn",
	}

	tests := []struct {
		name     string
		actor    string
		receiver string
		wantErr  bool
	}{
		{"executor to controller", "Alice", "Carl", false},
		{"executor to approver", "Bob", "Dunn", false},
		{"controller cannot send", "Carl", "Dunn", true},
		{"outsider cannot send", "Mallory", "Carl", true},
		{"executor to outsider", "Alice", "Mallory", true},
		{"executor to fellow executor", "Alice", "Bob", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, ActionCreate, record, &models.WorkRequest{Receiver: tt.receiver})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeCreateNilRecord(t *testing.T) {
	err := Authorize("Alice", ActionCreate, nil, &models.WorkRequest{Receiver: "Carl"})
	require.Error(t, err)
}

func TestAuthorizeResolveAndEdit(t *testing.T) {
	request := &models.WorkRequest{Sender: "Alice", Receiver: "Carl"}

	require.NoError(t, Authorize("Carl", ActionResolve, nil, request))
	require.Error(t, Authorize("Alice", ActionResolve, nil, request))

	require.NoError(t, Authorize("Alice", ActionEdit, nil, request))
	require.Error(t, Authorize("Carl", ActionEdit, nil, request))

	require.NoError(t, Authorize("Alice", ActionDelete, nil, request))
	require.Error(t, Authorize("Carl", ActionDelete, nil, request))
}

func TestAuthorizeUnknownAction(t *testing.T) {
	require.Error(t, Authorize("Alice", RequestAction("archive"), nil, nil))
}
