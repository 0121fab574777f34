package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ladle/internal/api"
	"ladle/internal/store"
)

func newFollowsCommand(ctx *commandContext) *cobra.Command {
	followsCmd := &cobra.Command{
		Use:   "follows",
		Short: "Manage followed YouTube channels",
	}

	followsCmd.AddCommand(newFollowsListCommand(ctx))
	followsCmd.AddCommand(newFollowsAddCommand(ctx))
	followsCmd.AddCommand(newFollowsRemoveCommand(ctx))
	followsCmd.AddCommand(newFollowsVideosCommand(ctx))
	followsCmd.AddCommand(newFollowsCheckCommand(ctx))

	return followsCmd
}

func newFollowsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List followed channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				follows, err := st.ListFollows(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.FollowListResponse{Follows: api.FromFollows(follows)})
				}
				if len(follows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Not following any channels yet.")
					return nil
				}

				rows := make([][]string, 0, len(follows))
				for _, follow := range follows {
					checked := "never"
					if follow.LastCheckedAt != nil {
						checked = follow.LastCheckedAt.Local().Format("2006-01-02 15:04")
					}
					rows = append(rows, []string{follow.ChannelID, follow.ChannelName, checked})
				}
				table := renderTable([]string{"Channel ID", "Name", "Last checked"}, rows)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the listing as JSON")
	return cmd
}

func newFollowsAddCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <channel-id>",
		Short: "Follow a channel's uploads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				channelName := name
				if channelName == "" {
					svc := followsService(cfg, st, ctx.cliLogger())
					title, err := svc.ChannelTitle(cmd.Context(), args[0])
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "warn: could not fetch channel title: %v\n", err)
					} else {
						channelName = title
					}
				}

				follow, err := st.CreateFollow(cmd.Context(), args[0], channelName)
				if err != nil {
					return err
				}
				label := follow.ChannelName
				if label == "" {
					label = follow.ChannelID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Following %s\n", label)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (skips the feed title lookup)")
	return cmd
}

func newFollowsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id-or-channel-id>",
		Short: "Stop following a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				follow, err := resolveFollow(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				if _, err := st.DeleteFollow(cmd.Context(), follow.ID); err != nil {
					return err
				}
				label := follow.ChannelName
				if label == "" {
					label = follow.ChannelID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "No longer following %s\n", label)
				return nil
			})
		},
	}
}

func newFollowsVideosCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "videos <id-or-channel-id>",
		Short: "Show a followed channel's recent uploads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				follow, err := resolveFollow(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				svc := followsService(cfg, st, ctx.cliLogger())
				videos, err := svc.RecentVideos(cmd.Context(), follow.ChannelID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.VideoListResponse{Videos: api.FromVideos(videos)})
				}
				if len(videos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No recent uploads.")
					return nil
				}

				rows := make([][]string, 0, len(videos))
				for _, video := range videos {
					published := ""
					if !video.PublishedAt.IsZero() {
						published = video.PublishedAt.Local().Format("2006-01-02")
					}
					rows = append(rows, []string{published, video.Title, video.URL})
				}
				table := renderTable([]string{"Published", "Title", "URL"}, rows)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the listing as JSON")
	return cmd
}

func newFollowsCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check followed channels for new uploads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				svc := followsService(cfg, st, ctx.cliLogger())
				updates, err := svc.CheckNew(cmd.Context())
				if err != nil {
					return err
				}
				if len(updates) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No new videos.")
					return nil
				}

				out := cmd.OutOrStdout()
				for _, update := range updates {
					label := update.ChannelName
					if label == "" {
						label = update.ChannelID
					}
					fmt.Fprintf(out, "%s: %d new\n", label, len(update.Videos))
					for _, video := range update.Videos {
						fmt.Fprintf(out, "  - %s (%s)\n", video.Title, video.URL)
					}
				}
				return nil
			})
		},
	}
}

// resolveFollow accepts either a row id or a channel id.
func resolveFollow(ctx context.Context, st *store.Store, key string) (*store.Follow, error) {
	follow, err := st.GetFollow(ctx, key)
	if err != nil {
		return nil, err
	}
	if follow == nil {
		follow, err = st.GetFollowByChannelID(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	if follow == nil {
		return nil, fmt.Errorf("no follow matches %q", key)
	}
	return follow, nil
}
