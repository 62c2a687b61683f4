package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `
accounts:
  - email: Team@GreenEarth.org
    name: Green Earth
    role: organization
  - email: ada@example.org
    name: Ada Lovelace
    role: student
    password: s3cret
    profile:
      location: London
      skills: maths, engines
projects:
  - organization: team@greenearth.org
    title: River cleanup
    description: Help us **clean** the river.
    status: active
    cause_areas: [Environment, " "]
    links: [https://greenearth.org]
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	require.Len(t, doc.Accounts, 2)
	assert.Equal(t, "Team@GreenEarth.org", doc.Accounts[0].Email)
	require.NotNil(t, doc.Accounts[1].Profile)
	assert.Equal(t, "London", doc.Accounts[1].Profile.Location)
	assert.Nil(t, doc.Accounts[0].Profile)

	require.Len(t, doc.Projects, 1)
	assert.Equal(t, []string{"Environment", " "}, doc.Projects[0].CauseAreas)
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Accounts)
	assert.Empty(t, doc.Projects)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "unknown field",
			input:   "accounts:\n  - email: a@b.c\n    name: A\n    nickname: x\n",
			wantErr: "field nickname not found",
		},
		{
			name:    "missing email",
			input:   "accounts:\n  - name: A\n",
			wantErr: "accounts[0]: email is required",
		},
		{
			name:    "missing name",
			input:   "accounts:\n  - email: a@b.c\n",
			wantErr: "name is required",
		},
		{
			name:    "unknown role",
			input:   "accounts:\n  - email: a@b.c\n    name: A\n    role: admin\n",
			wantErr: `unknown role "admin"`,
		},
		{
			name:    "duplicate email",
			input:   "accounts:\n  - {email: a@b.c, name: A}\n  - {email: A@B.C, name: B}\n",
			wantErr: "duplicate email a@b.c",
		},
		{
			name:    "project without organization",
			input:   "projects:\n  - title: T\n",
			wantErr: "projects[0]: organization is required",
		},
		{
			name:    "project without title",
			input:   "projects:\n  - organization: o@b.c\n",
			wantErr: "projects[0]: title is required",
		},
		{
			name:    "unknown status",
			input:   "projects:\n  - {organization: o@b.c, title: T, status: paused}\n",
			wantErr: `unknown project status "paused"`,
		},
		{
			name:    "duplicate project",
			input:   "projects:\n  - {organization: o@b.c, title: T}\n  - {organization: O@b.c, title: ' T '}\n",
			wantErr: "duplicate project",
		},
		{
			name:    "not yaml",
			input:   "accounts: [",
			wantErr: "failed to parse seed document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
