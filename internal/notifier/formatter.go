package notifier

import (
	"fmt"
	"html"
	"strings"
)

// FormatChangeSubject builds the alert subject line for a monitored URL.
func FormatChangeSubject(url string) string {
	return fmt.Sprintf("Screenshot Change Alert: %s", url)
}

// FormatChangeBody builds the HTML mail body: the changed URL, the change
// percentage to two decimal places, and an absolute link to the diff
// artifact.
func FormatChangeBody(url string, diffPercentage float64, diffImageURL string) string {
	escapedURL := html.EscapeString(url)
	escapedLink := html.EscapeString(diffImageURL)

	var b strings.Builder
	b.WriteString("<h2>Screenshot Change Alert</h2>\n")
	fmt.Fprintf(&b, "<p>A significant change (%.2f%%) was detected in the screenshot for:</p>\n", diffPercentage)
	fmt.Fprintf(&b, "<p><strong>%s</strong></p>\n", escapedURL)
	fmt.Fprintf(&b, "<p>View the diff image: <a href=%q>%s</a></p>\n", escapedLink, escapedLink)
	return b.String()
}

// AbsoluteDiffURL joins the configured base URL with a diff artifact's
// public path.
func AbsoluteDiffURL(baseURL, diffPublicPath string) string {
	return strings.TrimSuffix(baseURL, "/") + diffPublicPath
}
