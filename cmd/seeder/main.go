// cmd/seeder/main.go
package main

import (
    "log"

    "github.com/joho/godotenv"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/db"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/repository"
)

func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    db.Init()

    repo := &repository.SubscriberRepository{DB: db.DB}

    subscribers := []model.Subscriber{
        {Email: "flota.garcia@example.com", IsActive: true, Tags: []string{"flotas"}},
        {Email: "taller.lopez@example.com", IsActive: true, Tags: []string{"talleres"}},
        {Email: "transportes.mx@example.com", IsActive: true, Tags: []string{"flotas", "diesel"}},
        {Email: "baja.antiguo@example.com", IsActive: false, Tags: []string{}},
        {Email: "conductor.ruiz@example.com", IsActive: true, Tags: []string{"conductores"}},
    }

    for i := range subscribers {
        if err := repo.Insert(&subscribers[i]); err != nil {
            log.Println("⚠️ failed to seed subscriber", subscribers[i].Email, ":", err)
            continue
        }
        log.Println("seeded subscriber:", subscribers[i].Email)
    }

    log.Println("✅ Seeding complete")
}
