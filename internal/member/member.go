package member

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("member not found")
	ErrInvalidPhone = errors.New("phone number is required")
	ErrDuplicate    = errors.New("member with this phone already exists")
)

type Tier string

const (
	TierNormal  Tier = "normal"
	TierVIP     Tier = "vip"
	TierDiamond Tier = "diamond"
)

// Tier thresholds in accumulated points.
const (
	vipThreshold     = 2000
	diamondThreshold = 5000
)

// PointsRate is how many points a member earns per currency unit spent.
const PointsRate = 10

type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Tier   Tier   `json:"tier"`
	Points int    `json:"points"`
}

// TierForPoints maps an accumulated point balance to a tier.
func TierForPoints(points int) Tier {
	switch {
	case points >= diamondThreshold:
		return TierDiamond
	case points >= vipThreshold:
		return TierVIP
	default:
		return TierNormal
	}
}

// PointsEarned converts a settled bill total into earned points. Fractional
// currency units are truncated, never rounded up.
func PointsEarned(total decimal.Decimal) int {
	return int(total.Mul(decimal.NewFromInt(PointsRate)).IntPart())
}

// Directory is the member lookup and maintenance boundary. Find matches an
// exact phone number first, then falls back to an id substring match.
type Directory interface {
	Find(ctx context.Context, query string) (Member, error)
	Get(ctx context.Context, id string) (Member, error)
	List(ctx context.Context) ([]Member, error)
	Create(ctx context.Context, m Member) (Member, error)
	AddPoints(ctx context.Context, id string, points int) (Member, error)
}
