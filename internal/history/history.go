// Package history maintains the log of completed meetings. The log is a JSON
// array of records, newest first, serialized as one value in the key-value
// store. Mutations rewrite the whole list; there is no cross-call atomicity,
// which is acceptable for a client with a single focused writer.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"tianya/internal/logger"
	"tianya/internal/store"
	"tianya/pkg/meettypes"
)

// Service reads and writes the meeting history log.
type Service struct {
	store store.Store
	key   string
}

// NewService creates a history service over the given store.
func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		key:   store.MeetingHistoryKey,
	}
}

// Load returns all valid records, newest first. An absent value or a payload
// that fails to parse yields an empty log, not an error: stored history is
// never allowed to break the screen that shows it. Records with blank IDs are
// dropped as corrupt.
func (s *Service) Load(ctx context.Context) []meettypes.MeetingRecord {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		logger.Warn("Failed to read meeting history", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var records []meettypes.MeetingRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Warn("Meeting history payload is corrupt, treating as empty", "error", err)
		return nil
	}

	valid := records[:0]
	for _, rec := range records {
		if rec.Valid() {
			valid = append(valid, rec)
		}
	}
	return valid
}

// Append prepends record to the log and writes the whole list back.
// A failed read of the existing list does not lose the new record; the log
// restarts with the record as its only entry.
func (s *Service) Append(ctx context.Context, record meettypes.MeetingRecord) error {
	if !record.Valid() {
		return fmt.Errorf("meeting record must have an id")
	}

	records := s.Load(ctx)
	updated := append([]meettypes.MeetingRecord{record}, records...)

	return s.write(ctx, updated)
}

// Remove drops every record whose ID matches exactly and writes the result
// back. Removing an absent ID is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, id string) error {
	records := s.Load(ctx)

	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	return s.write(ctx, kept)
}

// Clear deletes the entire history log.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear meeting history: %w", err)
	}
	return nil
}

func (s *Service) write(ctx context.Context, records []meettypes.MeetingRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode meeting history: %w", err)
	}
	if err := s.store.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("failed to write meeting history: %w", err)
	}
	return nil
}
