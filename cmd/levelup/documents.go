package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/levelup/internal/storage"
	"github.com/spf13/cobra"
)

type exportedDocument struct {
	Key       string    `json:"key"`
	Revision  int       `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
	Value     any       `json:"value"`
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump stored collections as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(env *appEnv, out io.Writer) error {
				docs, err := env.repo.List(cmd.Context(), storage.DocumentListFilter{Prefix: prefix})
				if err != nil {
					return fmt.Errorf("list documents: %w", err)
				}
				dump := make([]exportedDocument, 0, len(docs))
				for _, d := range docs {
					var value any = json.RawMessage(d.Value)
					if !json.Valid(d.Value) {
						// Keep unreadable blobs visible instead of failing the dump.
						value = string(d.Value)
					}
					dump = append(dump, exportedDocument{Key: d.Key, Revision: d.Revision, UpdatedAt: d.UpdatedAt, Value: value})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(dump)
			})
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only export keys starting with prefix")
	return cmd
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <key>",
		Short: "Delete one stored collection; it is re-seeded on next start",
		Long:  "Keys: " + strings.Join(storage.Keys, ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !slices.Contains(storage.Keys, key) {
				return fmt.Errorf("unknown key %q (want one of %s)", key, strings.Join(storage.Keys, ", "))
			}
			return withEnv(cmd, flags, func(env *appEnv, out io.Writer) error {
				err := env.repo.Delete(cmd.Context(), key)
				switch {
				case errors.Is(err, storage.ErrNotFound):
					fmt.Fprintf(out, "nothing stored under %s\n", key)
					return nil
				case err != nil:
					return fmt.Errorf("delete %s: %w", key, err)
				}
				env.log.WithField("key", key).Info("collection reset")
				fmt.Fprintf(out, "reset %s\n", key)
				return nil
			})
		},
	}
}
