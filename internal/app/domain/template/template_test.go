package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/template"
)

func TestRender(t *testing.T) {
	t.Parallel()
	tr := template.New()

	ev := &domain.Event{
		User:     "alice",
		Channel:  "bobstream",
		TextArgs: []string{"dave", "extra"},
	}

	tests := []struct {
		name    string
		tmpl    string
		want    string
		wantErr bool
	}{
		{"plain text", "no placeholders here", "no placeholders here", false},
		{"user and channel", "{user} watches {channel}", "alice watches bobstream", false},
		{"positional args", "{user} boops {0}'s snoot!", "alice boops dave's snoot!", false},
		{"second arg", "{0} and {1}", "dave and extra", false},
		{"missing arg", "{user} boops {2}", "", true},
		{"unknown placeholder", "hello {nope}", "", true},
		{"unterminated", "hello {user", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tr.Render(tt.tmpl, ev)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderNoArgs(t *testing.T) {
	t.Parallel()
	tr := template.New()

	ev := &domain.Event{User: "alice", Channel: "bobstream"}

	_, err := tr.Render("so {0}", ev)
	assert.Error(t, err)

	got, err := tr.Render("{user} will be getting a pizza in the mail in a few years.", ev)
	require.NoError(t, err)
	assert.Equal(t, "alice will be getting a pizza in the mail in a few years.", got)
}
