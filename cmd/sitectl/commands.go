package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/globalsolutions/website/backend/internal/auth"
	"github.com/globalsolutions/website/backend/internal/backends"
	"github.com/globalsolutions/website/backend/internal/config"
	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/content/repository"
	"github.com/globalsolutions/website/backend/internal/content/sections"
	"github.com/globalsolutions/website/backend/internal/content/service"
	"github.com/spf13/cobra"
)

// env is what every content command needs: config, opened backends and the gateway.
type env struct {
	cfg *config.Config
	set *backends.Set
	gw  service.Gateway
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	set := backends.New(cfg)
	repo, err := set.Content(ctx)
	if err != nil {
		set.Close()
		return nil, err
	}
	return &env{cfg: cfg, set: set, gw: service.New(repo, sections.NewRegistry())}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sitectl",
		Short:        "Manage the site content store",
		SilenceUsage: true,
	}
	root.AddCommand(sectionsCmd(), initCmd(), getCmd(), putCmd(), copyCmd(), tokenCmd())
	return root
}

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List registered sections and the backend storing each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.set.Close()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tAREA\tPATH\tDEFAULT\tBACKEND")
			for _, s := range e.gw.Sections() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%s\n", s.Key, s.Area, s.Path, s.HasDefault, e.set.BackendFor(s.Key))
			}
			return tw.Flush()
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [key...]",
		Short: "Materialize defaults for sections that have none stored",
		Long: `Loads each section once so that sections without a stored document get
their default written. With no arguments every section with a default is loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.set.Close()
			keys := args
			if len(keys) == 0 {
				for _, s := range e.gw.Sections() {
					if s.HasDefault {
						keys = append(keys, s.Key)
					}
				}
			}
			for _, k := range keys {
				if _, err := e.gw.Load(cmd.Context(), k); err != nil {
					return fmt.Errorf("%s: %w", k, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", k)
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the current payload of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.set.Close()
			payload, err := e.gw.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, payload, "", "  "); err != nil {
				return err
			}
			buf.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
}

func putCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> <file|->",
		Short: "Validate and store a payload read from a file or stdin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				body []byte
				err  error
			)
			if args[1] == "-" {
				body, err = io.ReadAll(cmd.InOrStdin())
			} else {
				body, err = os.ReadFile(args[1])
			}
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.set.Close()
			if _, err := e.gw.Save(cmd.Context(), args[0], body); err != nil {
				var verr *content.ValidationError
				if errors.As(err, &verr) {
					for _, d := range verr.Details {
						fmt.Fprintln(cmd.ErrOrStderr(), "  -", d)
					}
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s saved\n", args[0])
			return nil
		},
	}
}

func copyCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "copy --to <backend> [key...]",
		Short: "Copy stored documents to another backend",
		Long: `Copies documents as stored, without validation, from the configured
content store to the named backend (file, sqlite, postgres, mongo, redis).
Sections with nothing stored are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return errors.New("--to is required")
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.set.Close()
			src, err := e.set.Content(cmd.Context())
			if err != nil {
				return err
			}
			dst, err := e.set.Repo(cmd.Context(), to)
			if err != nil {
				return err
			}
			keys := args
			if len(keys) == 0 {
				for _, s := range e.gw.Sections() {
					keys = append(keys, s.Key)
				}
			}
			n, err := copyDocuments(cmd.Context(), src, dst, keys, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied %d document(s) to %s\n", n, to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target backend")
	return cmd
}

func copyDocuments(ctx context.Context, src, dst repository.Repository, keys []string, out io.Writer) (int, error) {
	n := 0
	for _, k := range keys {
		doc, err := src.Get(ctx, k)
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Fprintf(out, "%s skipped (nothing stored)\n", k)
			continue
		}
		if err != nil {
			return n, fmt.Errorf("read %s: %w", k, err)
		}
		if doc.UpdatedAt.IsZero() {
			doc.UpdatedAt = time.Now().UTC()
		}
		if err := dst.Put(ctx, doc); err != nil {
			return n, fmt.Errorf("write %s: %w", k, err)
		}
		n++
	}
	return n, nil
}

func tokenCmd() *cobra.Command {
	var (
		email, role string
		ttl         time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an HS256 admin token signed with AUTH_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			tok, err := auth.IssueToken(cfg.Auth.JWTSecret, auth.Identity{Email: email, Role: role}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&role, "role", "", "role claim (also written to app_metadata.role)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
