package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/transport"
	pkgdb "github.com/Skotchmaster/coderr/pkg/db"
)

var adminReq transport.RegistrationRequest

// coderrctl create-admin
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account with its profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer pkgdb.Close(db)

		r := &repo.GormRepo{DB: db}
		if cfg.AutoMigrate {
			if err := repo.Migrate(cmd.Context(), db); err != nil {
				return err
			}
		}

		svc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret}
		u, err := svc.CreateAdmin(cmd.Context(), adminReq)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q (id %d, type %s)\n", u.Username, u.ID, u.Role)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminReq.Username, "username", "", "login name")
	f.StringVar(&adminReq.Email, "email", "", "email address")
	f.StringVar(&adminReq.Password, "password", "", "initial password")
	f.StringVar(&adminReq.Type, "type", "customer", "account type: customer or business")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
