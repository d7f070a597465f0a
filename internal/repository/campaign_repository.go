package repository

import (
    "database/sql"
    "fmt"
    "time"

    "github.com/lib/pq"

    appErrors "github.com/Gopoint-hub/truck-savers-web-sub000/internal/errors"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
)

type CampaignRepositoryInterface interface {
    Create(c *model.Campaign) error
    GetByID(id int) (*model.Campaign, error)
    ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)

    // TransitionStatus is a compare-and-set: the row is updated only if its
    // current status is one of `expected`. Returns false when the campaign
    // was found but the guard did not hold.
    TransitionStatus(campaignID int, expected []string, next string) (bool, error)

    Schedule(campaignID int, at time.Time) (bool, error)
    MarkSent(campaignID int, sentAt time.Time, recipientCount int) error
    ListDueScheduled(now time.Time) ([]*model.Campaign, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

const campaignColumns = `id, subject, preview_text, plain_content, html_content, status,
        scheduled_at, sent_at, recipient_count, open_count, click_count,
        created_by, created_at, updated_at`

func scanCampaign(row interface{ Scan(...any) error }) (*model.Campaign, error) {
    var c model.Campaign
    err := row.Scan(
        &c.ID, &c.Subject, &c.PreviewText, &c.PlainContent, &c.HTMLContent, &c.Status,
        &c.ScheduledAt, &c.SentAt, &c.RecipientCount, &c.OpenCount, &c.ClickCount,
        &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &c, nil
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.StatusDraft
    }
    query := `
        INSERT INTO campaigns (subject, preview_text, plain_content, html_content, status, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query,
        c.Subject, c.PreviewText, c.PlainContent, c.HTMLContent, c.Status, c.CreatedBy, c.CreatedAt,
    ).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
    query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
    c, err := scanCampaign(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    return c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if status != "" {
        query += fmt.Sprintf(" AND status=$%d", argPos)
        args = append(args, status)
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c, err := scanCampaign(rows)
        if err != nil {
            return nil, 0, err
        }
        campaigns = append(campaigns, c)
    }

    countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
    argsCount := []interface{}{}
    if status != "" {
        countQuery += " AND status=$1"
        argsCount = append(argsCount, status)
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return campaigns, total, nil
}

func (r *CampaignRepository) TransitionStatus(campaignID int, expected []string, next string) (bool, error) {
    query := `
        UPDATE campaigns
        SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status = ANY($3)
    `
    res, err := r.DB.Exec(query, next, campaignID, pq.Array(expected))
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

func (r *CampaignRepository) Schedule(campaignID int, at time.Time) (bool, error) {
    query := `
        UPDATE campaigns
        SET status=$1, scheduled_at=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4
    `
    res, err := r.DB.Exec(query, model.StatusScheduled, at, campaignID, model.StatusDraft)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// MarkSent is the single write of recipient_count, at dispatch completion.
func (r *CampaignRepository) MarkSent(campaignID int, sentAt time.Time, recipientCount int) error {
    query := `
        UPDATE campaigns
        SET status=$1, sent_at=$2, recipient_count=$3, updated_at=NOW()
        WHERE id=$4
    `
    _, err := r.DB.Exec(query, model.StatusSent, sentAt, recipientCount, campaignID)
    return err
}

func (r *CampaignRepository) ListDueScheduled(now time.Time) ([]*model.Campaign, error) {
    query := `SELECT ` + campaignColumns + `
        FROM campaigns
        WHERE status=$1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
        ORDER BY scheduled_at ASC`
    rows, err := r.DB.Query(query, model.StatusScheduled, now)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    campaigns := []*model.Campaign{}
    for rows.Next() {
        c, err := scanCampaign(rows)
        if err != nil {
            return nil, err
        }
        campaigns = append(campaigns, c)
    }
    return campaigns, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
