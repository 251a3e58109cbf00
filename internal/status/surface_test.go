package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/docchat/internal/domain"
)

func TestSurfaceLatestWins(t *testing.T) {
	s := NewSurface()

	_, ok := s.Current()
	assert.False(t, ok)

	s.Raise(domain.Alert{Source: domain.AlertUpload, Message: "first"})
	s.Raise(domain.Alert{Source: domain.AlertQuery, Message: "second"})

	alert, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, domain.AlertQuery, alert.Source)
	assert.Equal(t, "second", alert.Message)
}

func TestSurfaceDismiss(t *testing.T) {
	s := NewSurface()

	// Dismissing an empty surface is fine.
	s.Dismiss()

	s.Raise(domain.Alert{Source: domain.AlertDelete, Message: "boom"})
	s.Dismiss()

	_, ok := s.Current()
	assert.False(t, ok)
}
