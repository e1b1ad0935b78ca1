package coach

import (
	"context"
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const Greeting = "Hi! I'm your AI fitness coach. I can help you with workout advice, nutrition tips, and motivation. What would you like to know?"

type Reply struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type rule struct {
	topic    string
	keywords []string
	reply    string
}

// rules are matched in order, first hit wins
var rules = []rule{
	{
		topic:    "workout",
		keywords: []string{"workout", "exercise"},
		reply:    "For effective workouts, focus on compound movements like squats, deadlifts, and bench press. Start with 3-4 sets of 8-12 reps, and gradually increase weight as you get stronger. Remember to warm up properly!",
	},
	{
		topic:    "nutrition",
		keywords: []string{"nutrition", "diet", "food"},
		reply:    "A balanced diet is key! Aim for 1.6-2.2g of protein per kg of body weight, complex carbs for energy, and healthy fats. Don't forget to stay hydrated - drink at least 8 glasses of water daily.",
	},
	{
		topic:    "motivation",
		keywords: []string{"motivation", "motivated"},
		reply:    "Consistency beats perfection! Set small, achievable goals and celebrate your progress. Remember why you started - your future self will thank you. Every workout, no matter how small, is a step forward.",
	},
	{
		topic:    "weight",
		keywords: []string{"weight"},
		reply:    "Weight loss is about creating a calorie deficit through diet and exercise. Focus on strength training to build muscle (which burns more calories), and eat in a moderate calorie deficit. Be patient - sustainable weight loss takes time.",
	},
	{
		topic:    "muscle",
		keywords: []string{"muscle"},
		reply:    "To build muscle, focus on progressive overload in your strength training. Eat in a slight calorie surplus with adequate protein (1.6-2.2g per kg body weight). Get enough sleep and allow time for recovery between workouts.",
	},
	{
		topic:    "cardio",
		keywords: []string{"cardio", "running"},
		reply:    "Cardio is great for heart health and burning calories! Mix high-intensity intervals with steady-state cardio. Start with 20-30 minutes 3-4 times per week. You can do cardio on rest days or after strength training.",
	},
}

var fallback = rule{
	topic: "general",
	reply: "That's a great question! I'm here to help with fitness advice, workout tips, nutrition guidance, and motivation. Feel free to ask me anything about your fitness journey!",
}

type Service struct {
	NowFunc func() time.Time
}

func NewService() *Service {
	return &Service{
		NowFunc: time.Now,
	}
}

// Ask returns the canned reply for the message. Only signed in users get answers.
func (s *Service) Ask(ctx context.Context, userID, message string) (_ *Reply, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "service.coach.ask")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, access.InvalidArgument("empty message")
	}

	matched := match(message)
	span.SetAttributes(attribute.String("topic", matched.topic))

	return &Reply{
		ID:        uuid.NewString(),
		Topic:     matched.topic,
		Text:      matched.reply,
		Timestamp: s.NowFunc(),
	}, nil
}

func match(message string) rule {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r
			}
		}
	}
	return fallback
}
