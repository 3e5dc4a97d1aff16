package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	tp := NewTemplate()

	t.Run("welcome email", func(t *testing.T) {
		data := struct {
			FirstName string
		}{
			FirstName: "Jane",
		}

		subject, plainBody, htmlBody, err := tp.ParseTemplate("welcome_email.html", data)
		require.NoError(t, err)

		assert.NotEmpty(t, subject.String())
		assert.Contains(t, plainBody.String(), "Jane")
		assert.Contains(t, htmlBody.String(), "Jane")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, _, err := tp.ParseTemplate("missing.html", nil)
		assert.Error(t, err)
	})
}
