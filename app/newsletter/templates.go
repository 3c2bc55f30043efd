package newsletter

// Built-in template strategies. Each variant is the same pipeline with a
// different prompt set and styling; overrides can be dropped into the
// templates directory as YAML files.

const queryPrompt = `You are a research assistant preparing a newsletter.
Below is a thematic analysis of posts the reader has bookmarked.

Propose up to three short web-search queries that would add current context,
background, or recent developments to these themes. Return each query inside
numbered tags, nothing else:

<query1>first query</query1>
<query2>second query</query2>
<query3>third query</query3>

Analysis:
{{analysis}}`

const mergePrompt = `You are a research assistant preparing a newsletter.
Below is a thematic analysis of bookmarked posts, followed by findings from
web searches on those themes.

Rewrite the analysis so it incorporates the relevant findings. Keep the
original structure and insights; weave in facts, dates and developments from
the findings where they strengthen a theme. Ignore findings that do not fit.
Return only the updated analysis text.

Analysis:
{{analysis}}

Findings:
{{findings}}`

func builtinTemplates() map[string]*Template {
	return map[string]*Template{
		"modern-clean": {
			Name:    "modern-clean",
			Subject: "Your Threadletter digest",
			AnalysisPrompt: `You are an expert newsletter editor. Below are posts the reader
bookmarked recently, with engagement metrics.

Identify the three to five strongest themes across these posts. For each
theme, describe what the bookmarked posts say about it, which voices stand
out, and why the reader likely saved them. Be concrete; quote short
fragments where they help. Write flowing analytical prose, not a list.

Reader audience: {{audience}}
Preferred style: {{style}}

Posts:
{{posts}}`,
			QueryPrompt: queryPrompt,
			MergePrompt: mergePrompt,
			FormatPrompt: `You are an expert newsletter editor. Turn the analysis below into a
complete newsletter issue in markdown.

Structure:
- An h1 title that captures the issue's strongest theme
- A two-sentence opening hook
- One h2 section per theme with 2-3 tight paragraphs each
- A closing "Worth your time" section with one-line takeaways

Tone: clear, modern, no filler. Match the preferred style: {{style}}.
Return only the markdown document.

Analysis:
{{analysis}}`,
			EnhancePrompt: `Polish the markdown newsletter below for visual rhythm: add a
horizontal rule between sections, bold the single key phrase in each
section, and turn flat enumerations into bulleted lists where it improves
scanning. Do not change the words otherwise. Return only the markdown.

{{markdown}}`,
			CSS: `body { margin: 0; padding: 0; background-color: #f6f7f9; }
.newsletter { max-width: 640px; margin: 0 auto; padding: 32px 24px; background-color: #ffffff; font-family: -apple-system, 'Segoe UI', Helvetica, Arial, sans-serif; color: #1a1a2e; line-height: 1.6; }
h1 { font-size: 28px; font-weight: 700; margin: 0 0 16px; color: #0f0f23; }
h2 { font-size: 20px; font-weight: 600; margin: 28px 0 12px; color: #16213e; }
p { margin: 0 0 14px; font-size: 16px; }
a { color: #0f3460; }
hr { border: none; border-top: 1px solid #e4e6eb; margin: 28px 0; }
ul { padding-left: 22px; margin: 0 0 14px; }
li { margin-bottom: 6px; }`,
			Enrichment: true,
		},
		"twin-focus": {
			Name:    "twin-focus",
			Subject: "Threadletter: two things worth knowing",
			AnalysisPrompt: `You are a newsletter editor with a sharp eye for signal. Below are
posts the reader bookmarked recently.

Pick exactly the TWO most significant threads running through these posts —
the two stories or ideas the reader most clearly cares about. For each,
write a deep analysis: what happened, who is saying what, what the
bookmarked posts reveal about where this is going. Note any posts that fit
neither thread in one closing paragraph.

Reader audience: {{audience}}
Preferred style: {{style}}

Posts:
{{posts}}`,
			QueryPrompt: queryPrompt,
			MergePrompt: mergePrompt,
			FormatPrompt: `Turn the analysis below into a two-story newsletter issue in
markdown.

Structure:
- An h1 title naming both stories
- "Focus one" and "Focus two" as h2 sections, each with a one-line
  standfirst in italics followed by 3-4 paragraphs
- A short "Also noted" list for everything else

Tone: {{style}}. Return only the markdown document.

Analysis:
{{analysis}}`,
			EnhancePrompt: `Polish the markdown newsletter below: put a blockquote pull-quote
near the top of each focus section using the strongest sentence already in
that section, and bold the first phrase of every paragraph's key claim. Do
not change the words otherwise. Return only the markdown.

{{markdown}}`,
			CSS: `body { margin: 0; padding: 0; background-color: #101014; }
.newsletter { max-width: 600px; margin: 0 auto; padding: 36px 28px; background-color: #18181f; font-family: Georgia, 'Times New Roman', serif; color: #e8e6e3; line-height: 1.7; }
h1 { font-size: 26px; font-weight: 700; margin: 0 0 18px; color: #ffffff; border-bottom: 2px solid #c9a227; padding-bottom: 12px; }
h2 { font-size: 21px; font-weight: 600; margin: 30px 0 10px; color: #c9a227; }
p { margin: 0 0 15px; font-size: 16px; }
a { color: #7eb8da; }
blockquote { margin: 18px 0; padding: 4px 18px; border-left: 3px solid #c9a227; font-style: italic; color: #cfcdc9; }
ul { padding-left: 20px; }`,
			Enrichment: true,
		},
		"press-review": {
			Name:    "press-review",
			Subject: "Your Threadletter press review",
			AnalysisPrompt: `You are compiling a press review. Below are posts the reader
bookmarked recently, with engagement metrics.

Group the posts into sections the way a morning press review would:
lead story, notable developments, opinions and debates, and curiosities.
Under each, summarize what the relevant posts say, crediting authors by
handle. Keep each summary to a few crisp sentences.

Reader audience: {{audience}}
Preferred style: {{style}}

Posts:
{{posts}}`,
			QueryPrompt: queryPrompt,
			MergePrompt: mergePrompt,
			FormatPrompt: `Turn the press-review analysis below into a newsletter issue in
markdown.

Structure:
- An h1 title with the review date feel (no actual date)
- h2 sections: "The lead", "Developments", "Opinions", "And finally"
- Short paragraphs; credit post authors by handle in bold

Tone: brisk and newspaper-like; adjust toward: {{style}}.
Return only the markdown document.

Analysis:
{{analysis}}`,
			EnhancePrompt: `Polish the markdown press review below: render each author credit
as bold, separate sections with horizontal rules, and compress any
paragraph over four sentences. Do not add new information. Return only the
markdown.

{{markdown}}`,
			CSS: `body { margin: 0; padding: 0; background-color: #fdfbf7; }
.newsletter { max-width: 680px; margin: 0 auto; padding: 28px 32px; background-color: #fffef9; font-family: 'Iowan Old Style', Georgia, serif; color: #222222; line-height: 1.65; border-top: 4px double #222222; }
h1 { font-size: 30px; font-weight: 800; margin: 0 0 6px; text-align: center; letter-spacing: 0.5px; }
h2 { font-size: 18px; font-weight: 700; margin: 26px 0 10px; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #d8d4c8; padding-bottom: 4px; }
p { margin: 0 0 13px; font-size: 15px; }
a { color: #8c2b2b; }
hr { border: none; border-top: 1px solid #d8d4c8; margin: 24px 0; }`,
			Enrichment: false,
		},
	}
}
