package repository

import (
    "database/sql"

    "github.com/lib/pq"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
)

// SubscriberRepositoryInterface defines the read surface the pipeline needs.
// Subscriber CRUD lives in the CMS; the pipeline only reads active addresses.
type SubscriberRepositoryInterface interface {
    ListActiveEmails() ([]string, error)
}

// SubscriberRepository is the concrete implementation
type SubscriberRepository struct {
    DB *sql.DB
}

// ListActiveEmails returns the deduplicated addresses of active subscribers.
func (r *SubscriberRepository) ListActiveEmails() ([]string, error) {
    query := `
        SELECT DISTINCT email
        FROM subscribers
        WHERE is_active = TRUE AND email <> ''
        ORDER BY email
    `
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    emails := []string{}
    for rows.Next() {
        var email string
        if err := rows.Scan(&email); err != nil {
            return nil, err
        }
        emails = append(emails, email)
    }
    return emails, rows.Err()
}

// Insert is used by the seeder to load subscriber fixtures.
func (r *SubscriberRepository) Insert(s *model.Subscriber) error {
    query := `
        INSERT INTO subscribers (email, is_active, tags)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO NOTHING
        RETURNING id
    `
    err := r.DB.QueryRow(query, s.Email, s.IsActive, pq.Array(s.Tags)).Scan(&s.ID)
    if err == sql.ErrNoRows {
        return nil // already seeded
    }
    return err
}

var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)
