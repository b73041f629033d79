package frontend

import (
	"fmt"
	"html"
)

// Minimal inline pages; template rendering and charting stay out of scope.

func loginPage(errMsg string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>ThreatMap - Login</title></head>
<body>
<h1>Login</h1>
%s
<form method="post" action="/login">
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <button type="submit">Login</button>
</form>
<p><a href="/signup">Create an account</a></p>
</body>
</html>`, errorBanner(errMsg))
}

func signupPage(errMsg string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>ThreatMap - Sign Up</title></head>
<body>
<h1>Sign Up</h1>
%s
<form method="post" action="/signup">
  <input type="text" name="name" placeholder="Name" required>
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <input type="password" name="confirm_password" placeholder="Confirm Password" required>
  <button type="submit">Sign Up</button>
</form>
<p><a href="/login">Back to login</a></p>
</body>
</html>`, errorBanner(errMsg))
}

func dashboardPage(name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>ThreatMap - Dashboard</title></head>
<body>
<h1>ThreatMap Dashboard</h1>
<p>Signed in as %s &middot; <a href="/logout">Logout</a></p>
<ul>
  <li><a href="/api/cves">CVEs</a></li>
  <li><a href="/api/sources">Sources</a></li>
  <li><a href="/api/analysis">Analysis summary</a></li>
</ul>
</body>
</html>`, html.EscapeString(name))
}

func errorBanner(msg string) string {
	if msg == "" {
		return ""
	}
	return fmt.Sprintf(`<p style="color:red">%s</p>`, html.EscapeString(msg))
}
