package swarm

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/thoufiq2326/NexusAI/internal/observability"
	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services/corpus"
)

const (
	// HoldEmptyLocation is the hold reason for leads without a location
	HoldEmptyLocation = "empty location"

	waitingMessage = "Knowledge base empty - upload a PDF to start outreach generation"
)

// ProfessorConfig holds the Professor's tunables
type ProfessorConfig struct {
	// RetrievalWindow is the number of characters of context taken from a match
	RetrievalWindow int

	// WaitingLogEvery bounds how often the empty-corpus warning is logged
	WaitingLogEvery time.Duration
}

// DefaultProfessorConfig returns the stock settings
func DefaultProfessorConfig() ProfessorConfig {
	return ProfessorConfig{
		RetrievalWindow: 300,
		WaitingLogEvery: time.Minute,
	}
}

// Professor drafts retrieval-augmented outreach for leads that passed compliance
type Professor struct {
	recorder Recorder
	metrics  *observability.Metrics
	logger   *zap.Logger
	config   ProfessorConfig
	waiting  *rate.Sometimes
}

// NewProfessor creates a new Professor
func NewProfessor(recorder Recorder, metrics *observability.Metrics, logger *zap.Logger, config ProfessorConfig) *Professor {
	if config.RetrievalWindow <= 0 {
		config.RetrievalWindow = DefaultProfessorConfig().RetrievalWindow
	}
	return &Professor{
		recorder: recorder,
		metrics:  metrics,
		logger:   logger,
		config:   config,
		waiting:  &rate.Sometimes{First: 1, Interval: config.WaitingLogEvery},
	}
}

// Reset rearms the empty-corpus warning so the next waiting step logs again
func (p *Professor) Reset() {
	p.waiting = &rate.Sometimes{First: 1, Interval: p.config.WaitingLogEvery}
}

// Name returns the agent name
func (p *Professor) Name() string {
	return models.AgentProfessor
}

// Eligible reports whether a lead is ready for content generation
func Eligible(l *models.Lead) bool {
	return l.SafetyCheck == models.SafetyPassed &&
		l.Status == models.LeadStatusNurtured &&
		!l.HasContent() &&
		!l.IsHeld()
}

// Run drafts content for one lead
func (p *Professor) Run(ctx context.Context, st *State) StepResult {
	lead := st.First(Eligible)
	if lead == nil {
		return idle(p.Name())
	}

	if st.Corpus.Empty() {
		p.waiting.Do(func() {
			p.recorder.Log(p.Name(), waitingMessage, models.SeverityWarning)
		})
		return StepResult{Agent: p.Name(), Outcome: OutcomeWaiting, LeadID: lead.ID, Company: lead.Company}
	}

	loc := strings.TrimSpace(lead.Location)
	if loc == "" {
		lead.HoldReason = HoldEmptyLocation
		lead.LastLog = "Held: missing location"
		p.recorder.Log(p.Name(), fmt.Sprintf("Skipping lead with empty location: %s", lead.Company), models.SeverityError)
		return StepResult{Agent: p.Name(), Outcome: OutcomeHeld, LeadID: lead.ID, Company: lead.Company}
	}

	found := st.Corpus.Retrieve(loc, p.config.RetrievalWindow)
	retrieval := models.RetrievalMiss
	if found.Hit {
		retrieval = models.RetrievalHit
	}

	var subject, body string
	if c := st.Completer; c != nil {
		st.Unlocked(func() {
			subject, body = p.generate(ctx, c, lead, loc, found.Context)
		})
	} else {
		subject = TemplatedSubject(lead.ID, loc, found.Hit)
		body = TemplatedBody(loc, lead.Employees)
	}

	now := time.Now()
	lead.Status = models.LeadStatusNurtured
	lead.EmailSubject = subject
	lead.EmailBody = body
	lead.EmailGeneratedAt = &now
	lead.Retrieval = retrieval
	lead.LastLog = subject

	p.recorder.Log(p.Name(), fmt.Sprintf("%s | Email for %s: \"%s\"", retrieval, lead.Company, subject), models.SeverityInfo)

	entry := models.NewAuditEntry(auditProfessor, models.AuditActionContentGen, lead.Company).
		WithLead(lead.ID).
		WithDetail(subject).
		WithRetrieval(retrieval)
	if err := p.recorder.Append(entry); err != nil {
		p.logger.Warn("audit append failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}

	return StepResult{
		Agent:     p.Name(),
		Outcome:   OutcomeAdvanced,
		LeadID:    lead.ID,
		Company:   lead.Company,
		Subject:   subject,
		Retrieval: retrieval,
	}
}

// generate asks the completer for subject and body. Each failed call falls
// back to the templated text for that part only.
func (p *Professor) generate(ctx context.Context, c Completer, lead *models.Lead, loc, ragContext string) (string, string) {
	subject, err := c.Complete(ctx, SubjectPrompt(ragContext, lead.Role, loc))
	if err != nil {
		p.fallback(lead, err)
		subject = MissSubject(loc)
	}

	body, err := c.Complete(ctx, BodyPrompt(ragContext, lead, subject))
	if err != nil {
		p.fallback(lead, err)
		body = TemplatedBody(loc, lead.Employees)
	}

	return subject, body
}

func (p *Professor) fallback(lead *models.Lead, err error) {
	p.metrics.RecordFallback()
	p.logger.Warn("generation failed, using template",
		zap.String("lead_id", lead.ID),
		zap.Error(err),
	)
	p.recorder.Log(p.Name(),
		fmt.Sprintf("Gemini error: %s. Using simulation.", corpus.Truncate(err.Error(), 60)),
		models.SeverityWarning)
}

// SubjectPrompt asks for a four-word subject line
func SubjectPrompt(ragContext, role, loc string) string {
	return fmt.Sprintf("CONTEXT: \"%s\"\nWrite a 4-word urgent email subject for a %s in %s. Tone: Professional Security Alert.",
		ragContext, role, loc)
}

// BodyPrompt asks for a three-paragraph cold email body
func BodyPrompt(ragContext string, lead *models.Lead, subject string) string {
	return fmt.Sprintf("CONTEXT: \"%s\"\n"+
		"RECIPIENT: %s at %s, %s\n"+
		"COMPANY SIZE: %d employees, Budget: %sL\n"+
		"SUBJECT: %s\n\n"+
		"Write a 3-paragraph cold email (max 120 words). "+
		"P1: location-specific cyber threat. P2: NexusAI solution. P3: 15-min demo CTA. "+
		"Return ONLY the body, no subject/greeting/signature.",
		ragContext, lead.Role, lead.Company, lead.Location, lead.Employees, lead.Budget, subject)
}

var hitSubjects = []string{
	"Critical: %s Infrastructure Risk",
	"Alert: New Threat Targeting %s",
	"Urgent: Patch Required for %s Nodes",
	"Security Notice: %s Sector Vulnerability",
}

// MissSubject is the subject used when retrieval found nothing
func MissSubject(loc string) string {
	return fmt.Sprintf("Urgent: %s Cyber Security Update", loc)
}

// TemplatedSubject picks a subject deterministically from the lead id
func TemplatedSubject(leadID, loc string, hit bool) string {
	if !hit {
		return MissSubject(loc)
	}
	h := fnv.New32a()
	h.Write([]byte(leadID))
	return fmt.Sprintf(hitSubjects[h.Sum32()%uint32(len(hitSubjects))], loc)
}

var bodyTemplates = map[string]string{
	"Hyderabad": "Our threat intelligence shows a 340% spike in ransomware attacks targeting " +
		"Hyderabad FinTech firms in Q1 2025. Your sector is in the crosshairs.\n\n" +
		"NexusAI's Guardian Agent auto-remediates compliance gaps common to " +
		"{emp}-employee enterprises at your budget tier.\n\n" +
		"I'd love to walk you through a 15-minute live demo. Does Thursday work?",
	"Visakhapatnam": "Port-adjacent pharma companies in Visakhapatnam are facing a new wave of " +
		"supply chain attacks in 2025. Your sector is Tier-1 risk.\n\n" +
		"NexusAI monitors 1,200+ threat vectors in real-time for your " +
		"{emp}-person team, with zero manual intervention needed.\n\n" +
		"I'd love to demo how we've protected similar Vizag enterprises. Free 15 minutes?",
	"Bengaluru": "Cloud-native companies in Bengaluru saw a 280% increase in API-layer attacks " +
		"in Q4 2025. Your stack is in the highest-risk category.\n\n" +
		"NexusAI's Professor Agent auto-generates compliance reports, saving your " +
		"{emp}-person team 12 hours/week.\n\n" +
		"Quick 15-minute demo this week? I'll show you live threat data from your sector.",
	"Chennai": "Chennai's logistics sector has seen 3 major data breaches in 90 days. " +
		"Our AI flagged your vendor network as a critical exposure point.\n\n" +
		"NexusAI's 4-agent swarm locks down supply chain risk automatically with " +
		"full audit trails your compliance team will love.\n\n" +
		"I'd love to show you a 15-minute demo tailored to logistics security.",
}

const genericBody = "We've identified infrastructure vulnerabilities in the {loc} region.\n\n" +
	"NexusAI's autonomous swarm can close these gaps within 48 hours.\n\n" +
	"Would you have 15 minutes for a live demo this week?"

// TemplatedBody returns the per-location email body, or the generic one
func TemplatedBody(loc string, employees int) string {
	tmpl, ok := bodyTemplates[loc]
	if !ok {
		tmpl = genericBody
	}
	return strings.NewReplacer(
		"{emp}", fmt.Sprintf("%d", employees),
		"{loc}", loc,
	).Replace(tmpl)
}
