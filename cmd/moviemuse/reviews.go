package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews <movie-id>",
	Short: "Show community reviews for a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviews,
}

var reviewCmd = &cobra.Command{
	Use:   "review <movie-id>",
	Short: "Post or update your review for a movie",
	Long: `Post a rating and optional comment for a movie.

Reviewing a movie you've already reviewed replaces your earlier
rating and comment.`,
	Args: cobra.ExactArgs(1),
	RunE: runPostReview,
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().Int("rating", 0, "Rating, 1-10 (required)")
	reviewCmd.Flags().String("comment", "", "Review text")
	reviewCmd.MarkFlagRequired("rating")
}

func runReviews(cmd *cobra.Command, args []string) error {
	reviews, err := newClient().Reviews(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(reviews)
		return nil
	}

	if len(reviews) == 0 {
		fmt.Println("No reviews yet")
		return nil
	}

	for _, r := range reviews {
		fmt.Printf("%s  %d/10  (%s)\n", r.Username, r.Rating, r.UpdatedAt.Format("2006-01-02"))
		if r.Comment != "" {
			fmt.Printf("  %s\n", r.Comment)
		}
	}
	return nil
}

func runPostReview(cmd *cobra.Command, args []string) error {
	rating, _ := cmd.Flags().GetInt("rating")
	comment, _ := cmd.Flags().GetString("comment")

	review, err := newClient().PostReview(cmd.Context(), args[0], rating, comment)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(review)
		return nil
	}

	fmt.Printf("Posted review for %s: %d/10\n", review.MovieID, review.Rating)
	return nil
}
