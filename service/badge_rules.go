package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"shopsmart/models"
	"shopsmart/session"
)

// DefaultBadgeRules mirrors session.DefaultBadges as expressions.
var DefaultBadgeRules = map[string]string{
	"low-stock": "Stock <= 5",
	"new":       "IsNew",
}

// BadgeEnv is the variable set available to badge expressions.
type BadgeEnv struct {
	ID       string
	Name     string
	Category string
	Tags     []string
	Price    float64
	Rating   float64
	Stock    int
	IsNew    bool
	AgeDays  int
}

type badgeRule struct {
	badge   models.Badge
	source  string
	program *vm.Program
}

// BadgeRules evaluates configured expressions to decide product badges.
// Rules run in badge-name order.
type BadgeRules struct {
	rules  []badgeRule
	now    func() time.Time
	logger *zap.Logger
}

// Ensure BadgeRules implements session.BadgeEvaluator
var _ session.BadgeEvaluator = (*BadgeRules)(nil)

// NewBadgeRules compiles one boolean expression per badge name.
func NewBadgeRules(definitions map[string]string, logger *zap.Logger) (*BadgeRules, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	b := &BadgeRules{now: time.Now, logger: logger}
	for _, name := range names {
		source := definitions[name]
		program, err := expr.Compile(source, expr.Env(BadgeEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("failed to compile badge %q: %w", name, err)
		}
		b.rules = append(b.rules, badgeRule{
			badge:   models.Badge{Name: name, Label: BadgeLabel(name)},
			source:  source,
			program: program,
		})
	}
	return b, nil
}

// BadgeLabel turns a badge name like "low-stock" into "Low stock".
func BadgeLabel(name string) string {
	label := strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// Badges returns the badges whose expression holds for p. A rule failing at
// run time is logged and skipped.
func (b *BadgeRules) Badges(p models.Product) []models.Badge {
	env := newBadgeEnv(p, b.now())
	badges := []models.Badge{}
	for _, rule := range b.rules {
		out, err := expr.Run(rule.program, env)
		if err != nil {
			b.logger.Warn("Badge rule failed", zap.String("badge", rule.badge.Name),
				zap.String("expression", rule.source), zap.Error(err))
			continue
		}
		if ok, _ := out.(bool); ok {
			badges = append(badges, rule.badge)
		}
	}
	return badges
}

func newBadgeEnv(p models.Product, now time.Time) BadgeEnv {
	price, _ := p.Price.Float64()
	age := 0
	if !p.CreatedAt.IsZero() && now.After(p.CreatedAt) {
		age = int(now.Sub(p.CreatedAt).Hours() / 24)
	}
	return BadgeEnv{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Tags:     p.Tags,
		Price:    price,
		Rating:   p.Rating,
		Stock:    p.Stock,
		IsNew:    p.IsNew,
		AgeDays:  age,
	}
}
