package commander

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/platform/models"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// PullCommander sends pull commands.
type PullCommander struct {
	sender Sender
}

// NewPullCommander returns new PullCommander using provided sender for sending messages.
func NewPullCommander(sender Sender) PullCommander {
	return PullCommander{
		sender: sender,
	}
}

// SendPullCommand validates and sends pull command.
func (c PullCommander) SendPullCommand(ctx context.Context, cmd PullCommand) error {
	if err := Validate(cmd); err != nil {
		return err
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal pull command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}

// Validate checks that cmd names a basket and every item has supported platform and reference.
func Validate(cmd PullCommand) error {
	if strings.TrimSpace(cmd.Basket) == "" {
		return fmt.Errorf("%w: basket name is empty", ErrInvalidCommand)
	}

	if len(cmd.Items) == 0 {
		return fmt.Errorf("%w: basket %q has no items", ErrInvalidCommand, cmd.Basket)
	}

	for ix, item := range cmd.Items {
		if item.Platform == "" || strings.TrimSpace(item.Reference) == "" {
			return fmt.Errorf("%w: item %d has no platform or reference", ErrInvalidCommand, ix)
		}
		if !models.Platform(item.Platform).Valid() {
			return fmt.Errorf("%w: item %d has unsupported platform %q (want one of %v)",
				ErrInvalidCommand, ix, item.Platform, models.Platforms)
		}
	}

	return nil
}
