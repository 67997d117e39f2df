package lpscore

import (
	"fmt"
	"strings"
)

// Categories are the rubric categories, in the order the model is asked to report them
var Categories = []string{
	"Appeal-axis clarity",
	"Trust signals",
	"Objection handling",
	"Call-to-action clarity",
	"Image information value",
	"Readability and layout",
	"Price appeal",
}

// SystemPrompt is the fixed rubric instruction sent ahead of every landing page
const SystemPrompt = `You are a conversion-rate optimization expert for e-commerce marketplaces such as Rakuten Ichiba.
Analyze the product page below as a landing page (LP) and score it from 1 to 5 on each of the following categories, with concrete feedback.

Evaluation categories:
1. Appeal-axis clarity - how clearly the product name, catch copy and description convey the value proposition
2. Trust signals - review average, review count, shop information and other credibility elements
3. Objection handling - detail of the description, return guarantees, support information
4. Call-to-action clarity - how obvious the purchase buttons and calls to action are
5. Image information value - quality, number and placement of images that help the shopper understand the product
6. Readability and layout - how well the product information is organized and how easy it is to scan
7. Price appeal - clarity and competitiveness of the price display and the sense of a good deal

Return exactly one JSON object with this shape and nothing else:
{
  "overallScore": <number from 1 to 5>,
  "scores": [
    {
      "category": "<category name>",
      "score": <integer from 1 to 5>,
      "feedback": "<specific feedback, at most 200 characters>"
    }
  ],
  "improvements": ["<improvement 1>", "<improvement 2>", "<improvement 3>"],
  "imageAnalysis": [
    {
      "imageUrl": "<image URL>",
      "analysis": "<what the image shows, what works, what does not>",
      "suggestions": ["<suggestion 1>", "<suggestion 2>"],
      "score": <integer from 1 to 5>
    }
  ]
}

Every "score" must be an integer from 1 to 5. "overallScore" is your own overall judgement from 1 to 5, not a computed average.
Write all feedback, improvements, analyses and suggestions in Japanese and keep the advice practical and specific.`

// BuildPrompt renders the rubric and the landing page into a single prompt.
// Fields are never truncated; callers bound their own input sizes.
func BuildPrompt(in LPInput) string {
	var b strings.Builder

	b.WriteString(SystemPrompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, `Analyze the following marketplace product page as a landing page:

[Product information]
Title: %s
Headings / catch copy: %s
Description: %s
Price text: %s
CTA text: %s

[Product images]
Image URLs: %s
Number of images: %d

[Request]
Score each of the %d categories (%s) from 1 to 5 with specific feedback, give an overall score and improvement suggestions, and return the JSON object described above.
`,
		in.Title,
		strings.Join(in.Headings, ", "),
		in.Body,
		strings.Join(in.PriceTexts, ", "),
		strings.Join(in.CTATexts, ", "),
		strings.Join(in.Images, ", "),
		len(in.Images),
		len(Categories),
		strings.Join(Categories, ", "),
	)

	b.WriteString(`
[Image analysis]
For each image URL, analyze individually:
- what the image shows and its purpose (main product shot, detail, usage scene, ...)
- how much it helps the shopper understand the product and convert
- visual appeal and how well it conveys the product's attraction
- concrete improvement suggestions from an e-commerce image perspective
- a score from 1 to 5
`)

	if len(in.Images) == 0 {
		b.WriteString("\nNo images were supplied for this page, so return \"imageAnalysis\" as an empty array [].\n")
	} else {
		b.WriteString("\nIf no images are supplied, return \"imageAnalysis\" as an empty array [].\n")
	}

	return b.String()
}
