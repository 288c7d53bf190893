package watcher

import "context"

// Watcher reports changes to files in one directory until ctx is done.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called once per burst of changes with the last changed path.
type EventHandler func(ctx context.Context, filePath string) error
