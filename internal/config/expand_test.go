package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplate(t *testing.T) {
	t.Setenv("GLOSS_SET", "set-value")
	t.Setenv("GLOSS_EMPTY", "")

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "basic expansion",
			template: `prefix-${GLOSS_SET}-suffix`,
			want:     "prefix-set-value-suffix",
		},
		{
			name:     "missing expands to empty",
			template: `x=${GLOSS_MISSING}`,
			want:     "x=",
		},
		{
			name:     "fallback with colon treats empty as unset",
			template: `${GLOSS_EMPTY:-fallback}`,
			want:     "fallback",
		},
		{
			name:     "fallback without colon keeps empty",
			template: `x=${GLOSS_EMPTY-fallback}`,
			want:     "x=",
		},
		{
			name:     "nested fallback",
			template: `${GLOSS_MISSING:-${GLOSS_SET}}`,
			want:     "set-value",
		},
		{
			name:     "literal dollar",
			template: `$$${GLOSS_SET} and $^G$`,
			want:     "$set-value and $^G$",
		},
		{
			name:     "alternate when set and not empty",
			template: `[${GLOSS_SET:+alt}|${GLOSS_EMPTY:+alt}|${GLOSS_MISSING:+alt}]`,
			want:     "[alt||]",
		},
		{
			name:     "alternate without colon when set",
			template: `[${GLOSS_EMPTY+alt}|${GLOSS_MISSING+alt}]`,
			want:     "[alt|]",
		},
		{
			name:     "assign default is remembered",
			template: `${GLOSS_MISSING:=docs}/${GLOSS_MISSING}`,
			want:     "docs/docs",
		},
		{
			name:     "assign without colon keeps empty",
			template: `x=${GLOSS_EMPTY=docs} ${GLOSS_OTHER=a}${GLOSS_OTHER:+b}`,
			want:     "x= ab",
		},
		{
			name:     "assign with colon replaces empty",
			template: `${GLOSS_EMPTY:=docs}`,
			want:     "docs",
		},
		{
			name:     "unknown operator kept",
			template: `${GLOSS_SET%x}`,
			want:     "${GLOSS_SET%x}",
		},
		{
			name:     "unterminated kept",
			template: `a ${GLOSS_SET`,
			want:     "a ${GLOSS_SET",
		},
		{
			name:     "required var triggers error",
			template: `${GLOSS_MISSING:?missing root}`,
			wantErr:  true,
			errMsg:   "missing root",
		},
		{
			name:     "required without colon accepts empty",
			template: `x=${GLOSS_EMPTY?unset}`,
			want:     "x=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(tt.template)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
