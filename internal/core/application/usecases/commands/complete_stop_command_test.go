package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStopOutcome(t *testing.T) {
	t.Run("parses known outcomes case-insensitively", func(t *testing.T) {
		for token, want := range map[string]commands.StopOutcome{
			"delivered": commands.OutcomeDelivered,
			"Delivered": commands.OutcomeDelivered,
			"FAILED":    commands.OutcomeFailed,
			"skipped":   commands.OutcomeSkipped,
		} {
			outcome, err := commands.ParseStopOutcome(token)
			require.NoError(t, err, "token %q", token)
			assert.Equal(t, want, outcome, "token %q", token)
		}
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		for _, token := range []string{"", "done", "cancelled"} {
			_, err := commands.ParseStopOutcome(token)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "token %q", token)
		}
	})
}

func TestNewCompleteStopCommand(t *testing.T) {
	routeID := kernel.NewUUID()
	stopID := kernel.NewUUID()

	t.Run("should create delivered command without reason", func(t *testing.T) {
		cmd, err := commands.NewCompleteStopCommand(routeID, stopID, commands.OutcomeDelivered, "")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, commands.OutcomeDelivered, cmd.Outcome())
	})

	t.Run("should require reason for failed outcome", func(t *testing.T) {
		_, err := commands.NewCompleteStopCommand(routeID, stopID, commands.OutcomeFailed, "  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should accept failed outcome with reason", func(t *testing.T) {
		cmd, err := commands.NewCompleteStopCommand(routeID, stopID, commands.OutcomeFailed, "customer absent")

		require.NoError(t, err)
		assert.Equal(t, "customer absent", cmd.Reason())
	})

	t.Run("should allow skipped outcome without reason", func(t *testing.T) {
		cmd, err := commands.NewCompleteStopCommand(routeID, stopID, commands.OutcomeSkipped, "")

		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeSkipped, cmd.Outcome())
	})

	t.Run("should fail with unknown outcome", func(t *testing.T) {
		_, err := commands.NewCompleteStopCommand(routeID, stopID, commands.StopOutcome("done"), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with empty stop id", func(t *testing.T) {
		_, err := commands.NewCompleteStopCommand(routeID, kernel.UUID{}, commands.OutcomeDelivered, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
