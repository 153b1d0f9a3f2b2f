package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite for end-to-end tests
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest runs before each test
func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page
}

// TearDownTest runs after each test
func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

// login signs in as the seeded admin account and waits for the dashboard.
func (suite *E2ETestSuite) login() {
	_, err := suite.page.Goto(appURL + "/login")
	require.NoError(suite.T(), err, "could not navigate to login page")

	err = suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	err = suite.page.Locator("input[name=username]").Fill("testuser")
	require.NoError(suite.T(), err, "failed to fill username")

	err = suite.page.Locator("input[name=password]").Fill("testpass123")
	require.NoError(suite.T(), err, "failed to fill password")

	err = suite.page.Locator(".login-btn").Click()
	require.NoError(suite.T(), err, "failed to click login")

	err = suite.expect.Locator(suite.page.Locator(".dashboard-screen")).ToBeVisible()
	require.NoError(suite.T(), err, "did not redirect to dashboard after login")
}

func (suite *E2ETestSuite) TestLandingPage() {
	_, err := suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")

	err = suite.expect.Locator(suite.page.Locator(".hero")).ToBeVisible()
	require.NoError(suite.T(), err, "landing page not visible")

	err = suite.expect.Locator(suite.page.Locator(".login-link")).ToBeVisible()
	require.NoError(suite.T(), err, "login link not visible")
}

func (suite *E2ETestSuite) TestWrongPasswordShowsError() {
	_, err := suite.page.Goto(appURL + "/login")
	require.NoError(suite.T(), err)

	err = suite.page.Locator("input[name=username]").Fill("testuser")
	require.NoError(suite.T(), err)
	err = suite.page.Locator("input[name=password]").Fill("wrongpass")
	require.NoError(suite.T(), err)
	err = suite.page.Locator(".login-btn").Click()
	require.NoError(suite.T(), err)

	err = suite.expect.Locator(suite.page.Locator(".error")).ToContainText("Invalid username or password.")
	require.NoError(suite.T(), err, "expected the generic credential error")
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	// Login lands on the dashboard
	suite.login()

	err := suite.expect.Locator(suite.page.Locator(".monthly-total small")).ToHaveText("Spent this month")
	require.NoError(suite.T(), err, "dashboard assertion failed")

	// Go to the expense list
	_, err = suite.page.Goto(appURL + "/expenses")
	require.NoError(suite.T(), err, "could not navigate to expenses")

	err = suite.expect.Locator(suite.page.Locator("#expense-form")).ToBeVisible()
	require.NoError(suite.T(), err, "expense form not visible")

	// Create an expense
	err = suite.page.Locator("input[name=amount]").Fill("12.50")
	require.NoError(suite.T(), err, "failed to fill amount")

	err = suite.page.Locator("input[name=description]").Fill("Lunch Test")
	require.NoError(suite.T(), err, "failed to fill description")

	err = suite.page.Locator("input[name=category]").Fill("Food")
	require.NoError(suite.T(), err, "failed to fill category")

	err = suite.page.Locator("input[name=date]").Fill("2024-03-05")
	require.NoError(suite.T(), err, "failed to fill date")

	err = suite.page.Locator("button.submit").Click()
	require.NoError(suite.T(), err, "failed to submit expense")

	// Verify in the list
	err = suite.expect.Locator(suite.page.Locator(".expense-item")).ToHaveCount(1)
	require.NoError(suite.T(), err, "expense item count mismatch")

	item := suite.page.Locator(".expense-item").First()
	err = suite.expect.Locator(item.Locator(".expense-desc")).ToHaveText("Lunch Test")
	require.NoError(suite.T(), err, "description mismatch")

	err = suite.expect.Locator(item.Locator(".expense-amount")).ToContainText("12.50")
	require.NoError(suite.T(), err, "amount mismatch")

	// The login activity page records this session
	_, err = suite.page.Goto(appURL + "/profile/activity")
	require.NoError(suite.T(), err, "could not navigate to activity")

	err = suite.expect.Locator(suite.page.Locator(".activity-screen")).ToBeVisible()
	require.NoError(suite.T(), err, "activity page not visible")

	err = suite.expect.Locator(suite.page.Locator(".activity-row").First()).ToContainText("ok")
	require.NoError(suite.T(), err, "expected a successful login entry")

	// Logout returns to the landing page
	_, err = suite.page.Goto(appURL + "/logout")
	require.NoError(suite.T(), err, "could not log out")

	err = suite.expect.Locator(suite.page.Locator(".hero")).ToBeVisible()
	require.NoError(suite.T(), err, "expected the landing page after logout")
}

func (suite *E2ETestSuite) TestRegisterNewUser() {
	_, err := suite.page.Goto(appURL + "/register")
	require.NoError(suite.T(), err)

	err = suite.expect.Locator(suite.page.Locator(".register-form")).ToBeVisible()
	require.NoError(suite.T(), err, "register form not visible")

	err = suite.page.Locator("input[name=username]").Fill("newuser")
	require.NoError(suite.T(), err)
	err = suite.page.Locator("input[name=email]").Fill("newuser@example.com")
	require.NoError(suite.T(), err)
	err = suite.page.Locator("input[name=password]").Fill("newpass123")
	require.NoError(suite.T(), err)
	err = suite.page.Locator(".register-btn").Click()
	require.NoError(suite.T(), err)

	// Registration sends the user to the login page
	err = suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "did not land on the login page after registration")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
