package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-capture-service/internal/auth"
	"github.com/spec-kit/lead-capture-service/internal/config"
	"github.com/spec-kit/lead-capture-service/internal/domain"
	"github.com/spec-kit/lead-capture-service/internal/repository"
)

type seedModule struct {
	title       string
	description string
	lessons     int
}

var catalogModules = []seedModule{
	{"MÓDULO 1 – SOBREVIVÊNCIA IMEDIATA", "O essencial para os primeiros dias", 10},
	{"MÓDULO 2 – COMIDA E BEBIDA", "Nunca mais passar fome ou sede", 13},
	{"MÓDULO 3 – TRABALHO", "Consiga, mantenha e cresça no trabalho", 10},
	{"MÓDULO 4 – DINHEIRO E COMPRAS", "Gerencie seu dinheiro com segurança", 12},
	{"MÓDULO 5 – MORADIA E DIA A DIA", "Viva com independência", 10},
	{"MÓDULO 6 – TECNOLOGIA E COMUNICAÇÃO", "Conecte-se ao mundo", 10},
	{"MÓDULO 7 – TRANSPORTE", "Vá a qualquer lugar sozinho", 13},
	{"MÓDULO 8 – CONVERSAS", "Conecte-se com pessoas", 13},
	{"MÓDULO 9 – EMERGÊNCIAS", "Mantenha o controle quando tudo dá errado", 10},
	{"MÓDULO 10 – BUROCRACIA", "Resolva tudo sozinho", 15},
}

// SeedBootstrapAdmin creates the single operator account from configuration
// when it does not exist yet. The password has already passed the startup
// strength policy by the time this runs.
func SeedBootstrapAdmin(ctx context.Context, users repository.UserRepository, cfg config.Config, logger *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Admin.Email))

	if _, err := users.GetByEmail(ctx, email); err == nil {
		logger.Info("bootstrap admin already present", zap.String("email", email))
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Name:         cfg.Admin.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("bootstrap admin created", zap.String("email", email))
	return nil
}

// SeedCourseCatalog inserts the course and its modules when the catalog is
// empty. Catalog rows are reference data and never mutate afterwards.
func SeedCourseCatalog(ctx context.Context, courses repository.CourseRepository, logger *zap.Logger) error {
	count, err := courses.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	course := &domain.Course{
		Title:       "O Mínimo que Você Precisa pra se Virar nos EUA",
		Description: "Inglês prático para brasileiros que vivem ou querem viver nos Estados Unidos",
		Price:       297.00,
		Duration:    120,
		Lessons:     108,
		Active:      true,
	}
	if err := courses.InsertCourse(ctx, course); err != nil {
		return err
	}

	for i, m := range catalogModules {
		module := &domain.Module{
			CourseID:    course.ID,
			Title:       m.title,
			Description: m.description,
			Order:       i + 1,
			Lessons:     m.lessons,
		}
		if err := courses.InsertModule(ctx, module); err != nil {
			return err
		}
	}

	logger.Info("course catalog seeded",
		zap.String("course", course.Title),
		zap.Int("modules", len(catalogModules)))
	return nil
}
