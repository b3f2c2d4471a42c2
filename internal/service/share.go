package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/knitshape/internal/domain"
)

// ShareService issues and verifies signed share links. A token carries the
// calculation inputs, so shares need no storage.
type ShareService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewShareService creates a new ShareService signing with the given secret.
// Tokens expire after ttl.
func NewShareService(secret string, ttl time.Duration) *ShareService {
	return &ShareService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type shareClaims struct {
	Kind         domain.ShareKind    `json:"kind"`
	Stitches     int                 `json:"stitches"`
	Rows         int                 `json:"rows,omitempty"`
	Distribution domain.Distribution `json:"distribution,omitempty"`
	Operation    domain.Operation    `json:"operation,omitempty"`
	Rule         domain.CrewNeckRule `json:"rule,omitempty"`
	jwt.RegisteredClaims
}

// CreateStraight returns a token for a straight-line calculation.
func (s *ShareService) CreateStraight(in domain.StraightInput) (string, error) {
	if in.Stitches <= 0 || in.Rows <= 0 {
		return "", fmt.Errorf("%w: stitches and rows must be positive", domain.ErrInvalidInput)
	}
	return s.sign(shareClaims{
		Kind:         domain.ShareKindStraight,
		Stitches:     in.Stitches,
		Rows:         in.Rows,
		Distribution: in.Distribution,
		Operation:    in.Operation,
	})
}

// CreateCrewNeck returns a token for a crew neck calculation.
func (s *ShareService) CreateCrewNeck(total int, rule domain.CrewNeckRule) (string, error) {
	if total <= 0 {
		return "", fmt.Errorf("%w: stitches per side must be positive", domain.ErrInvalidInput)
	}
	return s.sign(shareClaims{
		Kind:     domain.ShareKindCrewNeck,
		Stitches: total,
		Rule:     rule,
	})
}

func (s *ShareService) sign(claims shareClaims) (string, error) {
	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign share token: %w", err)
	}
	return signed, nil
}

// Resolve verifies a token and returns the shared inputs. Malformed, tampered
// and expired tokens all yield domain.ErrNotFound.
func (s *ShareService) Resolve(tokenString string) (*domain.Share, error) {
	claims := &shareClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrNotFound
	}

	share := &domain.Share{Kind: claims.Kind}
	if claims.IssuedAt != nil {
		share.IssuedAt = claims.IssuedAt.Time
	}
	share.ExpiresAt = claims.ExpiresAt.Time

	switch claims.Kind {
	case domain.ShareKindStraight:
		dist, err := domain.ParseDistribution(string(claims.Distribution))
		if err != nil {
			return nil, domain.ErrNotFound
		}
		op, err := domain.ParseOperation(string(claims.Operation))
		if err != nil {
			return nil, domain.ErrNotFound
		}
		share.Straight = domain.StraightInput{
			Stitches:     claims.Stitches,
			Rows:         claims.Rows,
			Distribution: dist,
			Operation:    op,
		}
	case domain.ShareKindCrewNeck:
		rule, err := domain.ParseCrewNeckRule(string(claims.Rule))
		if err != nil {
			return nil, domain.ErrNotFound
		}
		share.NeckTotal = claims.Stitches
		share.NeckRule = rule
	default:
		return nil, domain.ErrNotFound
	}
	return share, nil
}
