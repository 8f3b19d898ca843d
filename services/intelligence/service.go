package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	appointmentRepo "wrenchworks/database/repository/appointment"
	clientRepo "wrenchworks/database/repository/client"
	invoiceRepo "wrenchworks/database/repository/invoice"
	"wrenchworks/models"

	"go.uber.org/zap"
)

// Cap the prompt history so long conversations stay inside the token window.
const maxHistoryTurns = 20

// AIService answers client questions about their workshop visits.
type AIService interface {
	// ProcessUserInput runs one conversational turn for the client.
	ProcessUserInput(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	// ResetConversation drops the client's rolling chat context.
	ResetConversation(ctx context.Context, clientID string) error
}

// WorkshopAIService grounds the assistant in the client's actual data: their
// next appointment and open invoices go into every prompt so the model answers
// from facts instead of guessing.
type WorkshopAIService struct {
	Logger       *zap.Logger
	Gemini       *GeminiClient
	ContextStore *RedisContextStore
	Clients      clientRepo.ClientRepository
	Appointments appointmentRepo.AppointmentRepository
	Invoices     invoiceRepo.InvoiceRepository
	Now          func() time.Time
}

func (s *WorkshopAIService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ProcessUserInput runs one conversational turn for the client.
func (s *WorkshopAIService) ProcessUserInput(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	chatCtx, err := s.ContextStore.Get(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("load chat context: %w", err)
	}

	prompt, err := s.buildPrompt(ctx, req, chatCtx)
	if err != nil {
		return nil, err
	}

	answer, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)

	chatCtx.History = append(chatCtx.History,
		models.ChatTurn{Role: "user", Text: req.Text},
		models.ChatTurn{Role: "assistant", Text: answer},
	)
	if len(chatCtx.History) > maxHistoryTurns {
		chatCtx.History = chatCtx.History[len(chatCtx.History)-maxHistoryTurns:]
	}
	if err := s.ContextStore.Set(ctx, req.ClientID, chatCtx); err != nil {
		s.Logger.Warn("failed to save chat context", zap.Error(err), zap.String("client", req.ClientID))
	}

	return &models.ChatResponse{ResponseText: answer}, nil
}

// ResetConversation drops the client's rolling chat context.
func (s *WorkshopAIService) ResetConversation(ctx context.Context, clientID string) error {
	return s.ContextStore.Clear(ctx, clientID)
}

// buildPrompt assembles the system instructions, the client's workshop facts,
// the conversation so far, and the new message.
func (s *WorkshopAIService) buildPrompt(ctx context.Context, req models.ChatRequest, chatCtx *models.ChatContext) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are the virtual assistant of a car repair workshop. ")
	sb.WriteString("Answer briefly and only about the workshop: appointments, repairs, invoices and opening hours. ")
	sb.WriteString("If asked about anything else, politely decline. ")
	sb.WriteString("Use only the facts below; if a fact is missing, say you do not know and suggest calling the workshop.\n\n")

	sb.WriteString("Facts about this customer:\n")
	s.writeClientFacts(ctx, req.ClientID, &sb)

	if len(chatCtx.History) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, turn := range chatCtx.History {
			sb.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Text))
		}
	}

	sb.WriteString("\nuser: ")
	sb.WriteString(req.Text)
	sb.WriteString("\nassistant:")
	return sb.String(), nil
}

// writeClientFacts appends what we know about the customer. Lookup failures
// degrade to fewer facts rather than failing the whole turn.
func (s *WorkshopAIService) writeClientFacts(ctx context.Context, clientID string, sb *strings.Builder) {
	c, err := s.Clients.GetByID(clientID)
	if err != nil || c == nil {
		s.Logger.Warn("assistant could not load client", zap.String("client", clientID), zap.Error(err))
		sb.WriteString("- (no customer record found)\n")
		return
	}
	fmt.Fprintf(sb, "- Name: %s %s\n", c.FirstName, c.LastName)
	for _, v := range c.Vehicles {
		fmt.Fprintf(sb, "- Vehicle: %d %s %s, plate %s\n", v.Year, v.Make, v.Model, v.Plate)
	}

	if appts, err := s.Appointments.GetByClient(clientID); err == nil {
		now := s.now()
		var next *models.Appointment
		for i := range appts {
			a := appts[i]
			if a.Status != models.AppointmentPending || a.Date.Before(now) {
				continue
			}
			if next == nil || a.Date.Before(next.Date) {
				next = &appts[i]
			}
		}
		if next != nil {
			fmt.Fprintf(sb, "- Next appointment: %s for %s\n",
				next.Date.Format("Monday, 2 January 2006 at 15:04"), next.Service)
		} else {
			sb.WriteString("- No upcoming appointment booked.\n")
		}
	}

	if invoices, err := s.Invoices.GetByClient(clientID); err == nil {
		open := 0
		var due float64
		for _, inv := range invoices {
			if inv.Status == models.InvoicePending {
				open++
				due += inv.Total
			}
		}
		if open > 0 {
			fmt.Fprintf(sb, "- Open invoices: %d, total due %.2f\n", open, due)
		} else {
			sb.WriteString("- No open invoices.\n")
		}
	}
}
