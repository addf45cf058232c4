package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sbilibin2017/recipe-api/internal/db"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

var errEmptyPassword = errors.New("password must not be empty")

// readPassword reads a password from the terminal without echo, or a single
// line from in when fd is not a terminal.
func readPassword(in io.Reader, fd int, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errEmptyPassword
	}
	return line, nil
}

func newCreateSuperuserCmd(getConfig func() *config, stdin *os.File) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create a staff superuser account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readPassword(stdin, int(stdin.Fd()), cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			conn, err := connectPostgres(ctx, getConfig())
			if err != nil {
				return err
			}
			defer conn.Close()

			users := services.NewUserService(
				repositories.NewUserReadRepository(conn, db.GetTxFromContext),
				repositories.NewUserWriteRepository(conn, db.GetTxFromContext),
			)
			user, err := users.CreateSuperuser(ctx, models.UserInput{
				Email:    &email,
				Name:     &name,
				Password: &password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Superuser email")
	cmd.Flags().StringVar(&name, "name", "", "Superuser display name")
	cmd.Flags().StringVar(&password, "password", "", "Superuser password, prompted when omitted")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
