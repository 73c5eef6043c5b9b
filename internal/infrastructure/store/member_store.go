package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/example/pos-terminal/internal/member"
)

// MemberStore implements member.Directory on PostgreSQL.
type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

const memberColumns = `id, name, phone, tier, points`

func scanMember(row *sql.Row) (member.Member, error) {
	var m member.Member
	err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Tier, &m.Points)
	if err == sql.ErrNoRows {
		return member.Member{}, member.ErrNotFound
	}
	if err != nil {
		return member.Member{}, err
	}
	return m, nil
}

// Find matches an exact phone number first, then falls back to an id
// substring match.
func (s *MemberStore) Find(ctx context.Context, query string) (member.Member, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return member.Member{}, member.ErrNotFound
	}

	m, err := scanMember(s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE phone = $1`, query))
	if err == nil {
		return m, nil
	}
	if err != member.ErrNotFound {
		return member.Member{}, fmt.Errorf("find member by phone: %w", err)
	}

	m, err = scanMember(s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id LIKE '%' || $1 || '%' ORDER BY id LIMIT 1`,
		query))
	if err == member.ErrNotFound {
		return member.Member{}, member.ErrNotFound
	}
	if err != nil {
		return member.Member{}, fmt.Errorf("find member by id: %w", err)
	}
	return m, nil
}

func (s *MemberStore) Get(ctx context.Context, id string) (member.Member, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if err == member.ErrNotFound {
		return member.Member{}, member.ErrNotFound
	}
	if err != nil {
		return member.Member{}, fmt.Errorf("get member %s: %w", id, err)
	}
	return m, nil
}

func (s *MemberStore) List(ctx context.Context) ([]member.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []member.Member
	for rows.Next() {
		var m member.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Tier, &m.Points); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *MemberStore) Create(ctx context.Context, m member.Member) (member.Member, error) {
	if strings.TrimSpace(m.Phone) == "" {
		return member.Member{}, member.ErrInvalidPhone
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.Tier = member.TierForPoints(m.Points)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, name, phone, tier, points) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.Phone, m.Tier, m.Points)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return member.Member{}, member.ErrDuplicate
		}
		return member.Member{}, fmt.Errorf("create member: %w", err)
	}
	return m, nil
}

// AddPoints credits points and recomputes the tier in one statement, then
// returns the updated record.
func (s *MemberStore) AddPoints(ctx context.Context, id string, points int) (member.Member, error) {
	var m member.Member
	err := s.db.QueryRowContext(ctx,
		`UPDATE members SET points = points + $2,
		 tier = CASE
			WHEN points + $2 >= 5000 THEN 'diamond'
			WHEN points + $2 >= 2000 THEN 'vip'
			ELSE 'normal'
		 END
		 WHERE id = $1
		 RETURNING `+memberColumns, id, points).
		Scan(&m.ID, &m.Name, &m.Phone, &m.Tier, &m.Points)
	if err == sql.ErrNoRows {
		return member.Member{}, member.ErrNotFound
	}
	if err != nil {
		return member.Member{}, fmt.Errorf("add points to member %s: %w", id, err)
	}
	return m, nil
}
