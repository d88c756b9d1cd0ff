// Package store provides abstractions for data persistence. It defines the
// interfaces the rest of the application depends on, the shared error
// taxonomy, and the pagination types returned by list operations. Concrete
// implementations live under internal/platform.
package store
