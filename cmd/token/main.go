// Command token prints an access token for local testing against the attendance API.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id")
	employeeID := flag.String("employee", "", "employee id")
	roleStr := flag.String("role", string(user.RoleEmployee), "admin, manager or employee")
	flag.Parse()

	if *employeeID == "" {
		log.Fatal("-employee is required")
	}
	if *userID == "" {
		*userID = *employeeID
	}
	role, ok := user.ParseRole(*roleStr)
	if !ok {
		log.Fatal(user.ErrInvalidRole)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
		GenerateAccessToken(user.Caller{UserID: *userID, EmployeeID: *employeeID, Role: role})
	if err != nil {
		log.Fatal("Error generating token: ", err)
	}

	fmt.Println(token)
	log.Printf("expires at %d", expiresAt)
}
