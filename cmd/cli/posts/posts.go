package posts

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/buger/jsonparser"
	"github.com/spf13/cobra"

	"github.com/dcallow/storefront/cmd/cli/output"
	"github.com/dcallow/storefront/cmd/cli/root"
)

var (
	username string
	tweet    string
)

func init() {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and write posts through the JSON API",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's posts",
		RunE:  runList,
	}
	listCmd.Flags().StringVar(&username, "username", "", "username to list posts for")
	listCmd.MarkFlagRequired("username")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Create a post for a user",
		RunE:  runSave,
	}
	saveCmd.Flags().StringVar(&username, "username", "", "username to post as")
	saveCmd.Flags().StringVar(&tweet, "tweet", "", "post text")
	saveCmd.MarkFlagRequired("username")

	postsCmd.AddCommand(listCmd, saveCmd)
	root.GetRoot().AddCommand(postsCmd)
}

// ==========================
// List posts
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	resp, err := http.Get(root.APIBase + "/api/posts/retrieve?username=" + url.QueryEscape(username))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// The API signals failure in the body, not the status code.
	if msg, err := jsonparser.GetString(body, "error"); err == nil {
		return fmt.Errorf("API error: %s", msg)
	}

	var rows [][]interface{}
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		postID, _ := jsonparser.GetInt(value, "post_id")
		userID, _ := jsonparser.GetInt(value, "user_id")
		text, _ := jsonparser.GetString(value, "tweet")
		posted, _ := jsonparser.GetString(value, "date_posted")
		rows = append(rows, []interface{}{postID, userID, text, posted})
	}, "posts")
	if err != nil {
		return fmt.Errorf("unexpected response: %w", err)
	}

	output.RenderTable([]string{"POST ID", "USER ID", "TWEET", "POSTED"}, rows)
	return nil
}

// ==========================
// Save post
// ==========================
func runSave(cmd *cobra.Command, args []string) error {
	q := url.Values{}
	q.Set("username", username)
	q.Set("tweet", tweet)

	resp, err := http.Post(root.APIBase+"/api/posts/save?"+q.Encode(), "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if msg, err := jsonparser.GetString(body, "error"); err == nil {
		return fmt.Errorf("API error: %s", msg)
	}

	postID, _ := jsonparser.GetInt(body, "post_data", "post_id")
	fmt.Printf("Posted as %s (post_id=%d)\n", username, postID)
	return nil
}
