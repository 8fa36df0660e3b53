package main

import (
	"jobboard/internal/infra/persistence/model"

	"gorm.io/gen"
)

// Generate type-safe query code for the persistence models.
func main() {
	g := gen.NewGenerator(gen.Config{
		OutPath: "internal/infra/persistence/postgres/query",
		Mode:    gen.WithoutContext | gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.ApplyBasic(
		model.UserModel{},
		model.TalentProfileModel{},
		model.EmployerProfileModel{},
		model.RefreshTokenModel{},
	)

	g.Execute()
}
