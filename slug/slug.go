package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"tracker/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const (
	// DefaultMaxSuffix bounds the collision loop of DeriveSlug.
	DefaultMaxSuffix = 100

	teamSlugBasisLength = 4

	maxWorkspaceSlugLength = 48
	minTeamSlugLength      = 2
	maxTeamSlugLength      = 7
)

var ErrMalformedSlug = errors.New("malformed slug")

var (
	workspaceSlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	teamSlugPattern      = regexp.MustCompile(`^[A-Z0-9]+$`)

	nonWorkspaceSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	nonTeamBasisChars     = regexp.MustCompile(`[^A-Z]`)
)

type ScopeKind int

const (
	ScopeWorkspace ScopeKind = iota
	ScopeTeam
)

// Scope is the uniqueness domain of a slug: global for workspaces, per workspace for teams.
type Scope struct {
	Kind        ScopeKind
	WorkspaceID types.ID
}

func WorkspaceScope() Scope {
	return Scope{Kind: ScopeWorkspace}
}

func TeamScope(workspaceID types.ID) Scope {
	return Scope{Kind: ScopeTeam, WorkspaceID: workspaceID}
}

func (s Scope) String() string {
	if s.Kind == ScopeTeam {
		return "team@" + s.WorkspaceID.String()
	}
	return "workspace"
}

// TakenError is the conflict reported when a slug already exists in scope.
func (s Scope) TakenError() error {
	if s.Kind == ScopeTeam {
		return bizerror.ErrTeamSlugTaken
	}
	return bizerror.ErrWorkspaceSlugTaken
}

// Accepts reports whether candidate has the explicit slug form of the scope.
func (s Scope) Accepts(candidate string) bool {
	if s.Kind == ScopeTeam {
		return len(candidate) >= minTeamSlugLength && len(candidate) <= maxTeamSlugLength && IsTeamSlug(candidate)
	}
	return len(candidate) <= maxWorkspaceSlugLength && IsWorkspaceSlug(candidate)
}

// ExistsFunc reports whether candidate is already used in scope.
type ExistsFunc func(tx *gorm.DB, scope Scope, candidate string) (bool, error)

// Generator produces slugs in two modes.
//
// DeriveSlug normalizes basis and appends -1, -2, ... until a free candidate is found.
// ValidateSlug checks a caller supplied candidate and never changes it.
type Generator interface {
	DeriveSlug(tx *gorm.DB, basis string, scope Scope) (string, error)
	ValidateSlug(tx *gorm.DB, candidate string, scope Scope) error
}

type storeGenerator struct {
	exists    ExistsFunc
	maxSuffix int
}

func NewGenerator(exists ExistsFunc, maxSuffix int) Generator {
	if maxSuffix <= 0 {
		maxSuffix = DefaultMaxSuffix
	}
	return &storeGenerator{exists: exists, maxSuffix: maxSuffix}
}

var DefaultGenerator = NewGenerator(ExistsInStore, DefaultMaxSuffix)

func (g *storeGenerator) DeriveSlug(tx *gorm.DB, basis string, scope Scope) (string, error) {
	base := NormalizeBasis(basis, scope)
	if base == "" {
		return "", bizerror.ErrSlugBasisEmpty
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := g.exists(tx, scope, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if suffix > g.maxSuffix {
			return "", bizerror.ErrSlugExhausted
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

func (g *storeGenerator) ValidateSlug(tx *gorm.DB, candidate string, scope Scope) error {
	if !scope.Accepts(candidate) {
		return &bizerror.ErrBadParam{Cause: ErrMalformedSlug}
	}
	taken, err := g.exists(tx, scope, candidate)
	if err != nil {
		return err
	}
	if taken {
		return scope.TakenError()
	}
	return nil
}

// NormalizeBasis turns a free-form basis into the base candidate of the scope.
func NormalizeBasis(basis string, scope Scope) string {
	if scope.Kind == ScopeTeam {
		return TeamSlugBasis(basis)
	}
	lower := strings.ToLower(strings.TrimSpace(basis))
	return strings.Trim(nonWorkspaceSlugChars.ReplaceAllString(lower, "-"), "-")
}

// TeamSlugBasis takes the first four characters, uppercases them and drops everything but A-Z.
// "acme" gives "ACME", "a1b2c3" gives "AB", "123" gives "".
func TeamSlugBasis(workspaceSlug string) string {
	runes := []rune(strings.TrimSpace(workspaceSlug))
	if len(runes) > teamSlugBasisLength {
		runes = runes[:teamSlugBasisLength]
	}
	return nonTeamBasisChars.ReplaceAllString(strings.ToUpper(string(runes)), "")
}

func IsWorkspaceSlug(s string) bool {
	return workspaceSlugPattern.MatchString(s)
}

func IsTeamSlug(s string) bool {
	return teamSlugPattern.MatchString(s)
}
