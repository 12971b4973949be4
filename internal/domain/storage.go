package domain

import "context"

// Storage mirrors kept artifacts to a remote destination.
type Storage interface {
	Upload(ctx context.Context, localPath string, remoteName string) error
}
