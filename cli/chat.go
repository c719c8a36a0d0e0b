package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/models"
)

func newChatCommand(rt *runtime) *cobra.Command {
	var page models.PageRequest

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "List conversations with consumers",
		Long: `List conversations with consumers, read them and reply.

Examples:
  supplierctl chat
  supplierctl chat messages 3
  supplierctl chat send 3 "Delivery is possible on Sunday"
  supplierctl chat open 50`,
		Args: cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			sessions, err := rt.deps.Console.ChatSessions(cmd.Context(), page)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(sessions.Items))
			for _, s := range sessions.Items {
				rows = append(rows, []string{
					strconv.FormatInt(s.ID, 10),
					s.ConsumerName(),
					s.SalesRepName(),
					s.Preview(),
				})
			}
			rt.printTable("Conversations", []string{"ID", "Consumer", "Sales rep", "Last message"}, rows, "No conversations yet")
			printPageFooter(rt, sessions)
			return nil
		}),
	}
	addPageFlags(cmd, &page)

	cmd.AddCommand(actionCommand(rt, "messages", "conversation", "Show the messages of a conversation", func(cmd *cobra.Command, id int64) error {
		return rt.printMessages(cmd.Context(), id)
	}))

	cmd.AddCommand(&cobra.Command{
		Use:   "send <conversation-id> <text>",
		Short: "Send a message to a conversation",
		Args:  cobra.MinimumNArgs(2),
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "conversation")
			if err != nil {
				return err
			}
			msg, err := rt.deps.Console.SendMessage(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Sent message %d\n", msg.ID)
			return nil
		}),
	})

	cmd.AddCommand(actionCommand(rt, "open", "consumer", "Open the conversation with a consumer", func(cmd *cobra.Command, id int64) error {
		return rt.openChat(cmd.Context(), id)
	}))
	return cmd
}

// openChat navigates to the chat page for consumerID and shows the
// conversation with that consumer when there is one
func (rt *runtime) openChat(ctx context.Context, consumerID int64) error {
	if err := rt.deps.Console.OpenChat(ctx, consumerID); err != nil {
		return err
	}
	dest := rt.deps.Router.Current()

	req := models.PageRequest{Page: 1, Size: models.MaxPageSize}
	for {
		sessions, err := rt.deps.Console.ChatSessions(ctx, req)
		if err != nil {
			return err
		}
		for _, s := range sessions.Items {
			if s.ConsumerID == dest.ConsumerID {
				return rt.printMessages(ctx, s.ID)
			}
		}
		if !sessions.HasNext() {
			break
		}
		req.Page++
	}
	fmt.Fprintln(rt.out, rt.styles.Muted.Render("No conversation with this consumer yet"))
	return nil
}

func (rt *runtime) printMessages(ctx context.Context, sessionID int64) error {
	messages, err := rt.deps.Console.ChatMessages(ctx, sessionID, models.PageRequest{})
	if err != nil {
		return err
	}

	fmt.Fprintln(rt.out, rt.styles.Title.Render(fmt.Sprintf("Conversation %d", sessionID)))
	if len(messages.Items) == 0 {
		fmt.Fprintln(rt.out, rt.styles.Muted.Render("No messages yet"))
		return nil
	}

	var me int64
	if user := rt.deps.Session.User(); user != nil {
		me = user.NumericID()
	}
	for _, m := range messages.Items {
		sender := m.SenderName()
		if m.IsOwn(me) {
			sender = "You"
		}
		stamp := "-"
		if !m.CreatedAt.IsZero() {
			stamp = m.CreatedAt.Format("Jan 2 15:04")
		}
		fmt.Fprintf(rt.out, "%s %s: %s\n", rt.styles.Muted.Render(stamp), rt.styles.Label.Render(sender), m.Text)
		if m.FileURL != nil && *m.FileURL != "" {
			fmt.Fprintf(rt.out, "  %s\n", rt.styles.Muted.Render(*m.FileURL))
		}
	}
	printPageFooter(rt, messages)
	return nil
}
