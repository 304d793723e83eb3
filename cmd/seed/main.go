// Command seed populates the database with demonstration data: five
// sensors of different types, ten readings per sensor spread over the last
// 24 hours, and one admin plus one regular user. The readings batch is
// inserted all-or-nothing; rerunning against a seeded database fails on the
// unique keys rather than duplicating data.
package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/iot-telemetry/internal/config"
	"github.com/iliyamo/iot-telemetry/internal/database"
	"github.com/iliyamo/iot-telemetry/internal/model"
	"github.com/iliyamo/iot-telemetry/internal/repository"
)

func strPtr(s string) *string { return &s }

var sensorSeed = []*model.Sensor{
	{
		Name:        "Lab Temperature Sensor A",
		Type:        model.SensorTypeTemperature,
		Location:    "Research Lab - Room 101",
		Status:      model.SensorStatusActive,
		Description: strPtr("Primary temperature monitor for the main research laboratory"),
	},
	{
		Name:        "Server Room Humidity",
		Type:        model.SensorTypeHumidity,
		Location:    "Data Centre - Server Room B",
		Status:      model.SensorStatusActive,
		Description: strPtr("Monitors humidity levels to protect server equipment"),
	},
	{
		Name:        "Atmospheric Pressure Unit",
		Type:        model.SensorTypePressure,
		Location:    "Weather Station - Rooftop",
		Status:      model.SensorStatusActive,
		Description: strPtr("Barometric pressure sensor for weather monitoring"),
	},
	{
		Name:        "Office Light Sensor",
		Type:        model.SensorTypeLight,
		Location:    "Admin Building - Open Plan Office",
		Status:      model.SensorStatusInactive,
		Description: strPtr("Ambient light level sensor for energy management"),
	},
	{
		Name:        "Motion Detector Entrance",
		Type:        model.SensorTypeMotion,
		Location:    "Main Building - Reception",
		Status:      model.SensorStatusActive,
		Description: strPtr("Motion detection for security and occupancy tracking"),
	},
}

// Unit and plausible value range per sensor type.
var unitMap = map[string]string{
	model.SensorTypeTemperature: "°C",
	model.SensorTypeHumidity:    "%",
	model.SensorTypePressure:    "hPa",
	model.SensorTypeLight:       "lux",
	model.SensorTypeMotion:      "events",
	model.SensorTypeGas:         "ppm",
}

var rangeMap = map[string][2]float64{
	model.SensorTypeTemperature: {18, 32},
	model.SensorTypeHumidity:    {30, 80},
	model.SensorTypePressure:    {990, 1030},
	model.SensorTypeLight:       {100, 1500},
	model.SensorTypeMotion:      {0, 20},
	model.SensorTypeGas:         {300, 600},
}

// randomValue returns a random float in [min, max] rounded to one decimal.
func randomValue(min, max float64) float64 {
	v := rand.Float64()*(max-min) + min
	return float64(int(v*10+0.5)) / 10
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	sensors := repository.NewSensorRepo(db)
	readings := repository.NewReadingRepo(db)
	users := repository.NewUserRepo(db)

	log.Printf("seeding sensors...")
	for _, s := range sensorSeed {
		if err := sensors.Create(ctx, s); err != nil {
			log.Fatalf("seed sensor %q failed: %v", s.Name, err)
		}
	}
	log.Printf("  created %d sensors", len(sensorSeed))

	log.Printf("seeding readings...")
	now := time.Now().UTC()
	var batch []*model.Reading
	for _, s := range sensorSeed {
		r := rangeMap[s.Type]
		for i := 0; i < 10; i++ {
			hoursAgo := rand.Float64() * 24
			batch = append(batch, &model.Reading{
				SensorID:  s.ID,
				Value:     randomValue(r[0], r[1]),
				Unit:      unitMap[s.Type],
				Timestamp: now.Add(-time.Duration(hoursAgo * float64(time.Hour))),
			})
		}
	}
	if err := readings.BulkInsert(ctx, batch); err != nil {
		log.Fatalf("seed readings failed: %v", err)
	}
	log.Printf("  created %d readings", len(batch))

	log.Printf("seeding users...")
	if _, err := users.Create(ctx, "Admin User", "admin@example.com", "admin123", model.RoleAdmin, cfg.BcryptCost); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if _, err := users.Create(ctx, "Demo User", "user@example.com", "user1234", model.RoleUser, cfg.BcryptCost); err != nil {
		log.Fatalf("seed user failed: %v", err)
	}
	log.Printf("  created 2 users (admin + user)")

	log.Printf("seeding complete")
}
