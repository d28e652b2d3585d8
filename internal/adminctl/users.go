package adminctl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/spf13/cobra"
)

// NewCreateAdminCommand creates the create-admin command.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin <username>",
		Short: "Create a user with the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			e, err := rootOpts.open()
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.users.Create(cmd.Context(), args[0], password, models.RoleAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (id %d, role %s)\n", u.UserName, u.ID, u.Role)
			return nil
		},
	}
}

// NewPromoteCommand creates the promote command.
func NewPromoteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <user-id> <role>",
		Short: "Set a user's role (basic, moderator, admin or 0-2)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("%w: invalid user id %q", common.ErrValidation, args[0])
			}
			role, err := parseRoleArg(args[1])
			if err != nil {
				return err
			}

			e, err := rootOpts.open()
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.users.Promote(cmd.Context(), id, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s now has role %s\n", u.UserName, u.Role)
			return nil
		},
	}
}

func parseRoleArg(s string) (models.Role, error) {
	for _, r := range []models.Role{models.RoleBasic, models.RoleModerator, models.RoleAdmin} {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrUnknownRole, s)
	}
	return models.ParseRole(n)
}
