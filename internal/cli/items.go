package cli

import (
	"errors"
	"strconv"

	"board-cli/internal/filter"
	"board-cli/internal/form"
	"board-cli/internal/model"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Browse and manage listings",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsCreateCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var search string
	var category string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings (client-side search/category filter)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := client(app).ListItems(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			items = filter.Apply(items, search, model.Category(category))
			out := map[string]any{
				"total": len(items),
				"pages": filter.PageCount(len(items)),
			}
			if page > 0 {
				out["page"] = page
				out["data"] = filter.Page(items, page)
			} else {
				out["data"] = items
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Name substring (case-insensitive, min 3 chars)")
	cmd.Flags().StringVar(&category, "category", "", "Exact category match (Недвижимость|Авто|Услуги)")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (page size 5; 0 = everything)")
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, errors.New("item id must be a number"))
			}
			it, err := client(app).GetItem(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
}

func newItemsCreateCmd(app *App) *cobra.Command {
	fields := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a listing (requires login)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			if _, ok := st.Token(); !ok {
				return writeErr(cmd, errors.New("not logged in; run `board login` first"))
			}

			// Run the same two-step workflow the TUI uses so the CLI
			// enforces identical validation. No draft cache here: a
			// one-shot command has nothing to autosave.
			w := form.NewCreate(nil)
			for key, val := range fields {
				if *val != "" {
					w.SetField(key, *val)
				}
			}
			if !w.Next() {
				return writeErr(cmd, validationError(w.Errors()))
			}
			it, err := w.Submit(cmd.Context(), client(app))
			if errors.Is(err, form.ErrValidation) {
				return writeErr(cmd, validationError(w.Errors()))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	for _, f := range append(form.BasicFields(),
		form.CategoryFields(model.CategoryRealEstate)...) {
		fields[f.Key] = cmd.Flags().String(f.Key, "", f.Label)
	}
	for _, f := range append(form.CategoryFields(model.CategoryAuto),
		form.CategoryFields(model.CategoryServices)...) {
		fields[f.Key] = cmd.Flags().String(f.Key, "", f.Label)
	}
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a listing (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, errors.New("item id must be a number"))
			}
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			if _, ok := st.Token(); !ok {
				return writeErr(cmd, errors.New("not logged in; run `board login` first"))
			}
			if err := client(app).DeleteItem(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

type fieldErrors map[string]string

func (e fieldErrors) Error() string {
	msg := "invalid listing:"
	for _, f := range append(form.BasicFields(), allCategoryFields()...) {
		if m, ok := e[f.Key]; ok {
			msg += " " + f.Key + ": " + m + ";"
		}
	}
	return msg
}

func validationError(errs map[string]string) error {
	return fieldErrors(errs)
}

func allCategoryFields() []form.FieldSpec {
	var out []form.FieldSpec
	for _, c := range model.Categories() {
		out = append(out, form.CategoryFields(c)...)
	}
	return out
}
