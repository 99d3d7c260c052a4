// Package brand models the creator brand profiles whose count is limited per plan.
package brand

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrNotFound     = errors.New("brand profile not found")
	ErrLimitReached = errors.New("brand profile limit reached for plan")
	ErrInvalid      = errors.New("invalid brand profile")
)

const (
	maxNameLength = 100
	maxColors     = 6
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// BrandProfile is a user's saved brand identity used by the branding kit.
type BrandProfile struct {
	id        uint
	sid       string
	userID    string
	name      string
	niche     string
	tone      string
	colors    []string
	createdAt time.Time
	updatedAt time.Time
}

func NewBrandProfile(sid, userID, name, niche, tone string, colors []string, now time.Time) (*BrandProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalid, maxNameLength)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrInvalid)
	}
	if len(colors) > maxColors {
		return nil, fmt.Errorf("%w: at most %d colors", ErrInvalid, maxColors)
	}
	for _, c := range colors {
		if !hexColor.MatchString(c) {
			return nil, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalid, c)
		}
	}

	return &BrandProfile{
		sid:       sid,
		userID:    userID,
		name:      name,
		niche:     strings.TrimSpace(niche),
		tone:      strings.TrimSpace(tone),
		colors:    colors,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBrandProfile rebuilds a profile from persistence without validation.
func ReconstructBrandProfile(id uint, sid, userID, name, niche, tone string, colors []string, createdAt, updatedAt time.Time) *BrandProfile {
	return &BrandProfile{
		id: id, sid: sid, userID: userID, name: name, niche: niche, tone: tone,
		colors: colors, createdAt: createdAt, updatedAt: updatedAt,
	}
}

func (b *BrandProfile) ID() uint             { return b.id }
func (b *BrandProfile) SID() string          { return b.sid }
func (b *BrandProfile) UserID() string       { return b.userID }
func (b *BrandProfile) Name() string         { return b.name }
func (b *BrandProfile) Niche() string        { return b.niche }
func (b *BrandProfile) Tone() string         { return b.tone }
func (b *BrandProfile) Colors() []string     { return b.colors }
func (b *BrandProfile) CreatedAt() time.Time { return b.createdAt }
func (b *BrandProfile) UpdatedAt() time.Time { return b.updatedAt }

func (b *BrandProfile) SetID(id uint) {
	b.id = id
}

type Repository interface {
	Create(ctx context.Context, profile *BrandProfile) error
	CountByUser(ctx context.Context, userID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]*BrandProfile, error)
	GetBySID(ctx context.Context, userID, sid string) (*BrandProfile, error)
	Delete(ctx context.Context, userID, sid string) error
}
