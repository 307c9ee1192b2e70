package audit

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thoufiq2326/NexusAI/models"
	"go.uber.org/zap"
)

// MockPublisher is a mock implementation of Publisher
type MockPublisher struct {
	mock.Mock
	mu        sync.Mutex
	published []models.LogEntry
}

func (m *MockPublisher) PublishLog(entry models.LogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Called(entry)
	m.published = append(m.published, entry)
}

func newTestJournal(capacity int) *Journal {
	return NewJournal(zap.NewNop(), Config{LogCapacity: capacity})
}

func TestJournal_LogInsertsAtHead(t *testing.T) {
	j := newTestJournal(10)

	j.Log(models.AgentHunter, "first", models.SeverityInfo)
	j.Log(models.AgentGuardian, "second", models.SeverityWarning)

	logs := j.Logs(0)
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Message)
	assert.Equal(t, models.SeverityWarning, logs[0].Severity)
	assert.Equal(t, "first", logs[1].Message)
	assert.Equal(t, models.AgentHunter, logs[1].Agent)
}

func TestJournal_LogCapacityEvictsOldest(t *testing.T) {
	j := newTestJournal(3)

	for i := 0; i < 5; i++ {
		j.Log(models.AgentSystem, fmt.Sprintf("msg-%d", i), models.SeverityInfo)
	}

	logs := j.Logs(0)
	require.Len(t, logs, 3)
	assert.Equal(t, "msg-4", logs[0].Message)
	assert.Equal(t, "msg-3", logs[1].Message)
	assert.Equal(t, "msg-2", logs[2].Message)
}

func TestJournal_LogsLimit(t *testing.T) {
	j := newTestJournal(10)
	for i := 0; i < 5; i++ {
		j.Log(models.AgentSystem, fmt.Sprintf("msg-%d", i), models.SeverityInfo)
	}

	logs := j.Logs(2)
	require.Len(t, logs, 2)
	assert.Equal(t, "msg-4", logs[0].Message)

	assert.Len(t, j.Logs(50), 5)
}

func TestJournal_DefaultSeverity(t *testing.T) {
	j := newTestJournal(10)
	entry := j.Log(models.AgentSystem, "hello", "")
	assert.Equal(t, models.SeverityInfo, entry.Severity)
}

func TestJournal_PublishesNewEntries(t *testing.T) {
	j := newTestJournal(10)
	pub := new(MockPublisher)
	pub.On("PublishLog", mock.AnythingOfType("models.LogEntry")).Return()
	j.SetPublisher(pub)

	entry := j.Log(models.AgentCloser, "synced", models.SeverityInfo)

	pub.AssertNumberOfCalls(t, "PublishLog", 1)
	require.Len(t, pub.published, 1)
	assert.Equal(t, entry.ID, pub.published[0].ID)
}

func TestJournal_AppendKeepsOrder(t *testing.T) {
	j := newTestJournal(10)

	require.NoError(t, j.Append(models.NewAuditEntry("Hunter", models.AuditActionScored, "Vizag Pharma")))
	require.NoError(t, j.Append(models.NewAuditEntry("Guardian", models.AuditActionCompliancePassed, "Vizag Pharma").WithDetail("5/5, bias:0")))

	trail := j.Trail()
	require.Len(t, trail, 2)
	assert.Equal(t, models.AuditActionScored, trail[0].Action)
	assert.Equal(t, "5/5, bias:0", trail[1].Detail)
}

func TestJournal_AppendRejectsInvalidEntry(t *testing.T) {
	j := newTestJournal(10)

	err := j.Append(models.NewAuditEntry("Closer", models.AuditActionCRMSync, ""))
	assert.Error(t, err)

	err = j.Append(nil)
	assert.Error(t, err)

	assert.Empty(t, j.Trail())
}

func TestJournal_TrailIsUnbounded(t *testing.T) {
	j := newTestJournal(2)
	for i := 0; i < 10; i++ {
		require.NoError(t, j.Append(models.NewAuditEntry("Hunter", models.AuditActionScored, fmt.Sprintf("c-%d", i))))
	}
	assert.Len(t, j.Trail(), 10)
}

func TestJournal_RetrievalStats(t *testing.T) {
	j := newTestJournal(10)

	hits, total := j.RetrievalStats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 0, total)

	require.NoError(t, j.Append(models.NewAuditEntry("Professor", models.AuditActionContentGen, "A").WithRetrieval(models.RetrievalHit)))
	require.NoError(t, j.Append(models.NewAuditEntry("Professor", models.AuditActionContentGen, "B").WithRetrieval(models.RetrievalMiss)))
	require.NoError(t, j.Append(models.NewAuditEntry("Closer", models.AuditActionCRMSync, "A")))

	hits, total = j.RetrievalStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, total)
}

func TestJournal_RestoreAndReset(t *testing.T) {
	j := newTestJournal(2)

	logs := []models.LogEntry{
		models.NewLogEntry(models.AgentSystem, "c", models.SeverityInfo),
		models.NewLogEntry(models.AgentSystem, "b", models.SeverityInfo),
		models.NewLogEntry(models.AgentSystem, "a", models.SeverityInfo),
	}
	trail := []models.AuditEntry{*models.NewAuditEntry("Hunter", models.AuditActionScored, "X")}

	j.Restore(logs, trail)

	restored := j.Logs(0)
	require.Len(t, restored, 2)
	assert.Equal(t, "c", restored[0].Message)
	assert.Len(t, j.Trail(), 1)

	j.Reset()
	stats := j.GetStats()
	assert.Equal(t, 0, stats.LogEntries)
	assert.Equal(t, 0, stats.AuditEntries)
	assert.Equal(t, 2, stats.LogCapacity)
}
