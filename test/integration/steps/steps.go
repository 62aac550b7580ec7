//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

func registerSteps(ctx *godog.ScenarioContext, t *testContext) {
	// Setup steps
	ctx.Given(`^today is "([^"]*)"$`, t.todayIs)
	ctx.Given(`^user "([^"]*)" has a budget of (\d+(?:\.\d+)?)$`, t.userHasABudgetOf)
	ctx.Given(`^user "([^"]*)" last reached alert level "([^"]*)" in "([^"]*)"$`, t.userLastReachedAlertLevel)
	ctx.Given(`^user "([^"]*)" spent (\d+(?:\.\d+)?) on "([^"]*)" today$`, t.userSpentToday)
	ctx.Given(`^a recurring expense "([^"]*)" of (\d+(?:\.\d+)?) is due on day (\d+) for user "([^"]*)"$`, t.aRecurringExpenseIsDue)
	ctx.Given(`^direct messages to "([^"]*)" fail$`, t.directMessagesFail)
	ctx.Given(`^direct messages to "([^"]*)" work again$`, t.directMessagesWorkAgain)
	ctx.Given(`^(\d+) minutes pass$`, t.minutesPass)
	ctx.Given(`^the exchange rate API is down$`, t.theExchangeRateAPIIsDown)

	// Auth steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, t.iAmAuthenticatedAs)
	ctx.Given(`^I am authenticated as an admin$`, t.iAmAuthenticatedAsAnAdmin)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^the "([^"]*)" job runs$`, t.theJobRuns)
	ctx.When(`^the email worker runs$`, t.theEmailWorkerRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)

	// State assertion steps
	ctx.Then(`^user "([^"]*)" should have (\d+) expenses? titled "([^"]*)"$`, t.userShouldHaveExpensesTitled)
	ctx.Then(`^the recurring expense "([^"]*)" should be marked generated on "([^"]*)"$`, t.recurringShouldBeMarkedGenerated)
	ctx.Then(`^user "([^"]*)" should be at alert level "([^"]*)" for "([^"]*)"$`, t.userShouldBeAtAlertLevel)
	ctx.Then(`^user "([^"]*)" should have received (\d+) direct messages?$`, t.userShouldHaveReceivedMessages)
	ctx.Then(`^the last direct message to "([^"]*)" should contain "([^"]*)"$`, t.lastMessageShouldContain)
	ctx.Then(`^no direct messages should have been sent$`, t.noDirectMessagesShouldHaveBeenSent)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the exchange rate API should have been called (\d+) times?$`, t.theRateAPIShouldHaveBeenCalled)
	ctx.Then(`^the operators should have been emailed a report about "([^"]*)"$`, t.operatorsShouldHaveBeenEmailed)
	ctx.Then(`^no operator email should have been sent$`, t.noOperatorEmailShouldHaveBeenSent)
}

func (t *testContext) todayIs(day string) error {
	parsed, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(parsed.Add(12 * time.Hour))
	return nil
}

func (t *testContext) userHasABudgetOf(userID string, amount float64) error {
	return t.budgetRepo.Upsert(context.Background(), userID, userID, amount)
}

func (t *testContext) userLastReachedAlertLevel(userID, level, month string) error {
	m, err := valueobject.ParseMonth(month)
	if err != nil {
		return err
	}
	return t.budgetRepo.UpsertAlertState(context.Background(), userID, entity.ParseAlertLevel(level), m)
}

func (t *testContext) userSpentToday(userID string, amount float64, category string) error {
	cat, ok := entity.ParseCategory(category)
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}
	owner := userID
	expense := entity.NewExpense(amount, cat, "", t.timeMock.Now().UTC(), &owner, &owner, nil)
	return t.expenseRepo.Create(context.Background(), expense)
}

func (t *testContext) aRecurringExpenseIsDue(title string, amount float64, day int, userID string) error {
	owner := userID
	recurring := entity.NewRecurringExpense(amount, entity.CategoryHousing, title, day, &owner, &owner)
	return t.recurringRepo.Create(context.Background(), recurring)
}

func (t *testContext) directMessagesFail(userID string) error {
	t.discord.FailFor(userID)
	return nil
}

func (t *testContext) directMessagesWorkAgain(userID string) error {
	t.discord.Recover(userID)
	return nil
}

func (t *testContext) minutesPass(minutes int) error {
	t.timeMock.Advance(time.Duration(minutes) * time.Minute)
	return nil
}

func (t *testContext) theExchangeRateAPIIsDown() error {
	t.rateAPI.SetStatus(http.StatusServiceUnavailable)
	return nil
}

func (t *testContext) iAmAuthenticatedAs(userID string) error {
	token, err := t.injector.TokenService.IssueAccessToken(context.Background(), userID, userID)
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) iAmAuthenticatedAsAnAdmin() error {
	return t.iAmAuthenticatedAs(adminUserID)
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) theJobRuns(job string) error {
	saved := t.accessToken
	defer func() { t.accessToken = saved }()

	if err := t.iAmAuthenticatedAsAnAdmin(); err != nil {
		return err
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/admin/jobs/"+job, nil); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusOK)
}

func (t *testContext) replacePlaceholders(content string) string {
	return strings.ReplaceAll(content, "{{id}}", t.lastID)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	req, err := http.NewRequest(method, t.server.URL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	if id, ok := responseBody["id"].(string); ok {
		t.lastID = id
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) userShouldHaveExpensesTitled(userID string, count int, title string) error {
	owner := userID
	expenses, err := t.expenseRepo.List(context.Background(), entity.ExpenseFilter{UserID: &owner})
	if err != nil {
		return err
	}

	matched := 0
	for _, e := range expenses {
		if e.Title == title {
			matched++
		}
	}
	if matched != count {
		return fmt.Errorf("expected %d expenses titled %q for %s, got %d", count, title, userID, matched)
	}
	return nil
}

func (t *testContext) recurringShouldBeMarkedGenerated(title, day string) error {
	templates, err := t.recurringRepo.List(context.Background(), nil)
	if err != nil {
		return err
	}
	for _, r := range templates {
		if r.Title != title {
			continue
		}
		if r.LastGeneratedDate == nil || *r.LastGeneratedDate != day {
			return fmt.Errorf("recurring expense %q last generated on %v, want %s", title, r.LastGeneratedDate, day)
		}
		return nil
	}
	return fmt.Errorf("recurring expense %q not found", title)
}

func (t *testContext) userShouldBeAtAlertLevel(userID, level, month string) error {
	record, err := t.budgetRepo.FindByUserID(context.Background(), userID)
	if err != nil {
		return err
	}
	if record.LastAlertMonth == nil || record.LastAlertMonth.String() != month {
		return fmt.Errorf("expected alert month %s, got %v", month, record.LastAlertMonth)
	}
	if string(record.LastAlertLevel) != level {
		return fmt.Errorf("expected alert level %s, got %s", level, record.LastAlertLevel)
	}
	return nil
}

func (t *testContext) userShouldHaveReceivedMessages(userID string, count int) error {
	if got := len(t.discord.Messages(userID)); got != count {
		return fmt.Errorf("expected %d direct messages to %s, got %d", count, userID, got)
	}
	return nil
}

func (t *testContext) lastMessageShouldContain(userID, text string) error {
	messages := t.discord.Messages(userID)
	if len(messages) == 0 {
		return fmt.Errorf("no direct messages to %s", userID)
	}
	if last := messages[len(messages)-1]; !strings.Contains(last, text) {
		return fmt.Errorf("last message to %s does not contain %q: %s", userID, text, last)
	}
	return nil
}

func (t *testContext) noDirectMessagesShouldHaveBeenSent() error {
	if n := t.discord.Total(); n != 0 {
		return fmt.Errorf("expected no direct messages, got %d", n)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %s, got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theRateAPIShouldHaveBeenCalled(times int) error {
	if got := t.rateAPI.Requests(); got != times {
		return fmt.Errorf("expected %d exchange rate requests, got %d", times, got)
	}
	return nil
}

func (t *testContext) theEmailWorkerRuns() error {
	if t.injector.EmailWorker == nil {
		return errors.New("email worker is not wired")
	}
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) operatorsShouldHaveBeenEmailed(job string) error {
	sent := t.mailer.Sent()
	if len(sent) != 1 {
		return fmt.Errorf("expected 1 operator email, got %d", len(sent))
	}
	if sent[0].To != opsRecipient {
		return fmt.Errorf("report sent to %s", sent[0].To)
	}
	if !strings.Contains(sent[0].Subject, job) {
		return fmt.Errorf("report subject %q does not mention %s", sent[0].Subject, job)
	}
	return nil
}

func (t *testContext) noOperatorEmailShouldHaveBeenSent() error {
	if n := len(t.mailer.Sent()); n != 0 {
		return fmt.Errorf("expected no operator email, got %d", n)
	}
	return nil
}

func getFieldValue(object map[string]any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
