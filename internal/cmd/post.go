package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zfogg/blogfront/pkg/formatter"
	"github.com/zfogg/blogfront/pkg/forms"
	"github.com/zfogg/blogfront/pkg/output"
	"github.com/zfogg/blogfront/pkg/prompter"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/posts"
)

var (
	postPage        int
	postGroup       int
	postTitle       string
	postDescription string
	postText        string
	postLesson      string
	postImage       string
	postDate        string
	postAuthor      int
	postYes         bool
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "List, view, publish, edit and delete blog posts",
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a page of posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := application.Posts.FetchPage(ctx, postPage, postGroup).Await(ctx); err != nil {
			return err
		}

		s := application.Store.State()
		if s.Posts.OutOfRange() && output.GetOutputFormat() != output.FormatJSON {
			output.PrintWarning("Page %d does not exist; the last page is %d", s.Posts.RequestedPage, s.Posts.CurrentPage)
			return nil
		}
		if err := formatter.PrintPosts("Posts", store.Views(s)); err != nil {
			return err
		}
		if output.GetOutputFormat() != output.FormatJSON {
			fmt.Fprintln(output.Writer(), formatter.PageFooter(s.Posts.CurrentPage, s.Posts.TotalPages, s.Posts.Count)+pager(s.Posts))
		}
		return nil
	},
}

// pager renders the page window as "  1 [2] 3 4 5".
func pager(s posts.State) string {
	window := posts.PageWindow(s, 5)
	if len(window) < 2 {
		return ""
	}
	parts := make([]string, 0, len(window))
	for _, n := range window {
		if n == s.CurrentPage {
			parts = append(parts, "["+strconv.Itoa(n)+"]")
		} else {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	return "  " + strings.Join(parts, " ")
}

var postViewCmd = &cobra.Command{
	Use:   "view <post-id>",
	Short: "Show a post in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		post, err := application.Posts.FetchByID(ctx, id).Await(ctx)
		if err != nil {
			return err
		}
		return formatter.PrintPost(store.ViewOf(application.Store.State(), post))
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	Long:  "Publish a new post. Fields not given as flags are prompted for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireSession(ctx); err != nil {
			return err
		}

		form := forms.PostForm{}
		var err error
		if form.Title, err = orPrompt(postTitle, "Title"); err != nil {
			return err
		}
		if form.Description, err = orPrompt(postDescription, "Description"); err != nil {
			return err
		}
		if form.Text = postText; form.Text == "" {
			if form.Text, err = prompter.Default().Multiline("Text", 200); err != nil {
				return err
			}
		}
		if form.LessonNum, err = orPrompt(postLesson, "Lesson number"); err != nil {
			return err
		}
		if form.ImagePath, err = orPrompt(postImage, "Image file"); err != nil {
			return err
		}

		in, err := form.Input()
		if err != nil {
			return err
		}
		post, err := application.Posts.Create(ctx, in).Await(ctx)
		if err != nil {
			return shown(err)
		}
		return formatter.PrintPost(store.ViewOf(application.Store.State(), post))
	},
}

var postUpdateCmd = &cobra.Command{
	Use:   "update <post-id>",
	Short: "Edit a post",
	Long:  "Edit a post. Only the fields given as flags are changed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := requireSession(ctx); err != nil {
			return err
		}

		in, err := forms.UpdateForm{
			Title:       postTitle,
			Description: postDescription,
			Text:        postText,
			LessonNum:   postLesson,
			ImagePath:   postImage,
			Date:        postDate,
			Author:      postAuthor,
		}.Input()
		if err != nil {
			return err
		}
		post, err := application.Posts.Update(ctx, id, in).Await(ctx)
		if err != nil {
			return shown(err)
		}
		return formatter.PrintPost(store.ViewOf(application.Store.State(), post))
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !postYes {
			ok, err := prompter.PromptConfirm(fmt.Sprintf("Delete post %d?", id))
			if err != nil {
				return err
			}
			if !ok {
				output.PrintInfo("Cancelled")
				return nil
			}
		}

		ctx := cmd.Context()
		if err := requireSession(ctx); err != nil {
			return err
		}
		_, err = application.Posts.Delete(ctx, id).Await(ctx)
		return shown(err)
	},
}

func postFormFlags(c *cobra.Command) {
	c.Flags().StringVar(&postTitle, "title", "", "Post title")
	c.Flags().StringVar(&postDescription, "description", "", "Short description (at least 10 characters)")
	c.Flags().StringVar(&postText, "text", "", "Post body (at least 20 characters)")
	c.Flags().StringVar(&postLesson, "lesson", "", "Lesson number")
	c.Flags().StringVar(&postImage, "image", "", "Path to the image file")
}

func init() {
	postListCmd.Flags().IntVar(&postPage, "page", 1, "Page number")
	postListCmd.Flags().IntVar(&postGroup, "group", 0, "Course group (default from config)")

	postFormFlags(postCreateCmd)
	postFormFlags(postUpdateCmd)
	postUpdateCmd.Flags().StringVar(&postDate, "date", "", "Publication date (YYYY-MM-DD)")
	postUpdateCmd.Flags().IntVar(&postAuthor, "author", 0, "Author id")

	postDeleteCmd.Flags().BoolVarP(&postYes, "yes", "y", false, "Skip the confirmation prompt")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postViewCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postUpdateCmd)
	postCmd.AddCommand(postDeleteCmd)
}
