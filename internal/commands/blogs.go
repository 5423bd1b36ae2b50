package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewBlogsCmd creates the blogs command group.
func NewBlogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blogs",
		Aliases: []string{"blog"},
		Short:   "Manage blog posts",
		Long:    "List, inspect, generate, edit, publish and delete blog posts.",
	}

	cmd.AddCommand(
		newBlogsListCmd(),
		newBlogsShowCmd(),
		newBlogsCreateCmd(),
		newBlogsUpdateCmd(),
		newBlogsPublishCmd(),
		newBlogsDeleteCmd(),
	)
	return cmd
}

func newBlogsListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blog posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.options(app, "blogs")
			if err != nil {
				return err
			}

			page, err := app.API.Blogs().List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return present(app, asMaps(page.Results), "blog_post", false,
				output.WithSummary("%d of %d blog posts", len(page.Results), page.Meta.Count),
				output.WithMeta("page", page.Meta.CurrentPage),
				output.WithMeta("num_pages", page.Meta.NumPages))
		},
	}
	flags.register(cmd)
	return cmd
}

func newBlogsShowCmd() *cobra.Command {
	var md bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a blog post with full content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			post, err := app.API.Blogs().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return present(app, asMap(post), "blog_post", md)
		},
	}
	cmd.Flags().BoolVar(&md, "md", false, "Render as Markdown")
	return cmd
}

func newBlogsCreateCmd() *cobra.Command {
	var title string
	var keywords []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new blog post",
		Long:  "Queue generation of a new blog post. The post appears in the list as draft once generation completes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if title == "" {
				return output.ErrUsage("--title is required")
			}

			err = app.API.Blogs().Create(cmd.Context(), &api.CreateBlogPostRequest{
				Title:    title,
				Keywords: keywords,
			})
			if err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Blog post %q queued for generation", title))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "SEO keyword (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newBlogsUpdateCmd() *cobra.Command {
	var title, content, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a blog post",
		Long:  "Fetch the full post, apply the given fields and write it back. Fields not passed keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if title == "" && content == "" && status == "" {
				return output.ErrUsage("Nothing to update; pass --title, --content or --status")
			}

			// Read-modify-write so unedited fields survive the round trip.
			post, err := app.API.Blogs().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if title != "" {
				post.Title = title
			}
			if content != "" {
				post.Content = content
			}
			if status != "" {
				post.Status = status
			}

			if err := app.API.Blogs().Update(cmd.Context(), id, post); err != nil {
				return err
			}
			return app.OK(asMap(post), output.WithSummary("Blog post %d updated", id))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newBlogsPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a completed blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.API.Blogs().Publish(cmd.Context(), id); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Blog post %d published", id))
		},
	}
}

func newBlogsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a blog post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !force {
				ok, err := confirmDelete(app, fmt.Sprintf("Delete blog post %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					return app.OK(nil, output.WithSummary("Canceled"))
				}
			}

			if err := app.API.Blogs().Delete(cmd.Context(), id); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Blog post %d deleted", id))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
