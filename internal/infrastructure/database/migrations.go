package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations aplica as migrações pendentes do diretório migrations
func RunMigrations(migrationsPath string) error {
	dbURL := ConnectionStringFromEnv()

	sourceURL := fmt.Sprintf("file://%s", migrationsPath)

	// Criar instância do migrate
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	// Aplicar migrações
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao verificar versão das migrações: %w", err)
	}

	log.Printf("Migrações aplicadas com sucesso (versão %d, dirty=%v)", version, dirty)
	return nil
}
