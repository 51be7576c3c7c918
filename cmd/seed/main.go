// seed crea el usuario super_admin y, con SEED_DEMO=true, usuarios por rol, categorías y
// proveedores de ejemplo. Se puede ejecutar varias veces: lo que ya existe se omite.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
)

const demoPassword = "taller123"

type demoUser struct {
	email, first, last, role string
}

var demoUsers = []demoUser{
	{"recepcion@taller.local", "Rosa", "Recepción", entity.RoleReceptionist},
	{"tecnico@taller.local", "Tomás", "Técnico", entity.RoleTechnician},
	{"bodega@taller.local", "Iván", "Inventario", entity.RoleInventoryManager},
	{"contabilidad@taller.local", "Carla", "Contable", entity.RoleAccountant},
}

var demoCategories = []struct{ name, description string }{
	{"Engine Parts", "Componentes de motor"},
	{"Brake System", "Pastillas, discos y líquido de frenos"},
	{"Suspension", "Amortiguadores, resortes y rótulas"},
	{"Electrical", "Baterías, alternadores y bujías"},
	{"Body Parts", "Paneles, espejos y luces"},
	{"Interior", "Tapicería y accesorios"},
	{"Filters", "Filtros de aceite, aire y combustible"},
	{"Fluids", "Aceites, refrigerantes y lubricantes"},
}

var demoSuppliers = []struct{ name, contact, email, phone, terms string }{
	{"Auto Parts Direct", "John Smith", "orders@autopartsdirect.com", "+12025550143", "net_30"},
	{"Premium Auto Supply", "Sarah Johnson", "sales@premiumauto.com", "+12025550178", "net_15"},
	{"Fast Track Parts", "Mike Wilson", "info@fasttrackparts.com", "+12025550191", "net_30"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	l := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})
	log := l.Component("seed")

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("ADMIN_EMAIL y ADMIN_PASSWORD son obligatorios")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	s := seeder{
		users:      postgres.NewUserRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		log:        log,
	}

	if err := s.user(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, "Admin", "Taller", entity.RoleSuperAdmin); err != nil {
		log.Fatal().Err(err).Msg("usuario administrador")
	}
	if !cfg.Seed.Demo {
		log.Info().Msg("seed completado")
		return
	}
	for _, u := range demoUsers {
		if err := s.user(ctx, u.email, demoPassword, u.first, u.last, u.role); err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("usuario demo")
		}
	}
	if err := s.catalog(ctx); err != nil {
		log.Fatal().Err(err).Msg("catálogo demo")
	}
	log.Info().Msg("seed completado con datos de demostración")
}

type seeder struct {
	users      *postgres.UserRepo
	categories *postgres.CategoryRepo
	suppliers  *postgres.SupplierRepo
	log        zerolog.Logger
}

func (s seeder) user(ctx context.Context, email, password, first, last, role string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		s.log.Debug().Str("email", email).Msg("usuario existente, se omite")
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := s.users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Str("role", role).Msg("usuario creado")
	return nil
}

func (s seeder) catalog(ctx context.Context) error {
	now := time.Now()
	for _, c := range demoCategories {
		existing, err := s.categories.GetByName(ctx, c.name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.categories.Create(ctx, &entity.Category{
			ID:          uuid.New().String(),
			Name:        c.name,
			Description: c.description,
			IsActive:    true,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		s.log.Info().Str("category", c.name).Msg("categoría creada")
	}
	for _, sp := range demoSuppliers {
		existing, err := s.suppliers.GetByName(ctx, sp.name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.suppliers.Create(ctx, &entity.Supplier{
			ID:            uuid.New().String(),
			Name:          sp.name,
			ContactPerson: sp.contact,
			Email:         sp.email,
			Phone:         sp.phone,
			Country:       "USA",
			PaymentTerms:  sp.terms,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}); err != nil {
			return err
		}
		s.log.Info().Str("supplier", sp.name).Msg("proveedor creado")
	}
	return nil
}
