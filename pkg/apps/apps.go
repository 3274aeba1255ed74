package apps

import (
	"context"
)

// Accepter routes an incoming bot interaction to the app that claims it.
type Accepter interface {
	AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error)
	AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error)
}
