package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"marinaclub/internal/database"
	"marinaclub/internal/domain"
	"marinaclub/internal/pkg/numeric"
	"marinaclub/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "marina.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM activity_logs")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM booking_rules")
	db.Exec("DELETE FROM tariffs")
	db.Exec("DELETE FROM vessels")
	db.Exec("DELETE FROM berths")
	db.Exec("DELETE FROM clubs")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	users := repository.NewUserRepository(db)
	clubs := repository.NewClubRepository(db)
	berths := repository.NewBerthRepository(db)
	vessels := repository.NewVesselRepository(db)
	tariffs := repository.NewTariffRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@marinaclub.kz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Администратор",
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("admin create failed:", err)
	}
	log.Println("Admin created: admin@marinaclub.kz / admin123")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	clubOwner := domain.User{
		Email:        "marat@kapchagai-marina.kz",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleClubOwner,
		Name:         "Марат",
		Phone:        "+7 777 123 4567",
		OwnerStatus:  domain.OwnerVerified,
	}
	if err := users.Create(ctx, &clubOwner); err != nil {
		log.Fatal("club owner create failed:", err)
	}

	var owners []domain.User
	ownerEmails := []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"}
	for i, email := range ownerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleVesselOwner,
			Name:         fmt.Sprintf("Судовладелец %d", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
		}
		if err := users.Create(ctx, &u); err != nil {
			log.Fatal("vessel owner create failed:", err)
		}
		owners = append(owners, u)
	}

	// ================== CLUBS ==================
	log.Println("Creating clubs...")

	club := domain.Club{
		OwnerID:      clubOwner.ID,
		Name:         "Капчагай Марина",
		Address:      "Капшагай, набережная 1",
		SeasonYear:   2026,
		ActiveMonths: domain.MonthList{5, 6, 7, 8, 9},
		BasePrice:    50000,
	}
	if err := clubs.Create(ctx, &club); err != nil {
		log.Fatal("club create failed:", err)
	}

	// ================== BERTHS ==================
	log.Println("Creating berths...")

	berthSpecs := []struct {
		number           string
		maxLen, maxWidth float64
	}{
		{"A-01", 8.0, 3.0},
		{"A-02", 10.0, 3.5},
		{"B-01", 6.0, 2.5},
		{"B-02", 14.0, 4.5},
	}
	for _, s := range berthSpecs {
		b := domain.Berth{
			ClubID:      club.ID,
			Number:      s.number,
			MaxLength:   numeric.Meters(s.maxLen),
			MaxWidth:    numeric.Meters(s.maxWidth),
			IsAvailable: true,
		}
		if err := berths.Create(ctx, &b); err != nil {
			log.Fatal("berth create failed:", err)
		}
	}

	// ================== TARIFFS ==================
	log.Println("Creating tariffs...")

	season := domain.Tariff{
		ClubID: club.ID,
		Kind:   domain.TariffSeason,
		Amount: 200000,
	}
	if err := tariffs.Create(ctx, &season); err != nil {
		log.Fatal("season tariff create failed:", err)
	}

	monthly := domain.Tariff{
		ClubID: club.ID,
		Kind:   domain.TariffMonthly,
		Amount: 60000,
		Months: domain.MonthList{6, 7, 8},
	}
	if err := tariffs.Create(ctx, &monthly); err != nil {
		log.Fatal("monthly tariff create failed:", err)
	}

	deposit := domain.BookingRule{
		ClubID:        club.ID,
		TariffID:      &season.ID,
		Kind:          domain.RuleRequireDeposit,
		DepositAmount: 20000,
	}
	if err := tariffs.CreateRule(ctx, &deposit); err != nil {
		log.Fatal("booking rule create failed:", err)
	}

	// ================== VESSELS ==================
	log.Println("Creating vessels...")

	vesselSpecs := []struct {
		name          string
		length, width float64
	}{
		{"Чайка", 7.2, 2.6},
		{"Бриз", 9.5, 3.2},
		{"Волна", 5.8, 2.2},
	}
	for i, s := range vesselSpecs {
		v := domain.Vessel{
			OwnerID:     owners[i].ID,
			Name:        s.name,
			Length:      numeric.Meters(s.length),
			Width:       numeric.Meters(s.width),
			Capacity:    4 + i*2,
			IsActive:    true,
			IsValidated: true,
		}
		if err := vessels.Create(ctx, &v); err != nil {
			log.Fatal("vessel create failed:", err)
		}
	}

	log.Println("Seed complete.")
}
