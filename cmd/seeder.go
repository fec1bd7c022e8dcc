package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/talento-plus/internal/dimension"
	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/frahmantamala/talento-plus/pkg/logger"
	"github.com/spf13/cobra"
)

var baselineDimensions = map[dimension.Kind][]string{
	dimension.KindJobTitle: {
		employee.DefaultJobTitle,
		"Desarrollador",
		"Analista",
		"Coordinador",
		"Gerente",
		"Auxiliar Administrativo",
	},
	dimension.KindDepartment: {
		employee.DefaultDepartment,
		"Tecnología",
		"Recursos Humanos",
		"Contabilidad",
		"Ventas",
		"Operaciones",
	},
	dimension.KindEducationLevel: {
		employee.DefaultEducationLevel,
		"Técnico",
		"Tecnólogo",
		"Profesional",
		"Especialización",
		"Maestría",
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline dimensions",
	Long:  `Create the default job titles, departments and education levels. Existing names are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		deps, err := initializeDependencies(cfg, logger.L())
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer deps.Close()

		ctx := context.Background()
		reconciler := deps.Dimensions.NewReconciler()
		for _, kind := range dimension.Kinds {
			for _, name := range baselineDimensions[kind] {
				if _, err := reconciler.Resolve(ctx, kind, name); err != nil {
					log.Fatalf("failed to seed %s %q: %v", kind, name, err)
				}
			}
		}

		logger.L().Info("baseline dimensions seeded", "created", reconciler.Created())
	},
}
