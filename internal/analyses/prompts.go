package analyses

// maxPromptChars caps how much resume text is inserted into a prompt.
const maxPromptChars = 15000

const roastPromptTemplate = `
First, determine if the input text resembles a professional Resume or CV.
If it is obviously NOT a resume (e.g., a novel, code file text, cooking recipe, random gibberish), return EXACTLY:
{ "error": "Not a Resume", "details": "This document does not look like a resume. Please upload a valid CV." }

If it IS a resume, proceed to be the darker, most cynical, soul-crushing senior tech recruiter in existence. You don't just roast; you destroy dreams.
The job market is brutal, and this candidate has NO CHANCE. Tell them why.

Analyze this resume and provide a BRUTAL reality check. Make them cry. Point out every flaw, every cliché, every weak project.

You must generate the response in THREE languages/styles.
**CRITICAL**: For each language, return an ARRAY of exactly 5 savage bullet points. Not a paragraph.

1. English: Pure, unadulterated savage English.
2. Hindi (Hinglish): A mix of Hindi and English, using Bollywood slang or Desi insults where appropriate.
3. Telugu (Tanglish): A mix of Telugu and English, using local slang/tollywood references if fitting.

IMPORTANT: You must return ONLY valid JSON.
Format when valid:
{
    "roast": {
        "english": ["Savage point 1", "Savage point 2", "Savage point 3", "Savage point 4", "Savage point 5"],
        "hindi": ["Hinglish point 1", "Hinglish point 2", "Hinglish point 3", "Hinglish point 4", "Hinglish point 5"],
        "telugu": ["Tanglish point 1", "Tanglish point 2", "Tanglish point 3", "Tanglish point 4", "Tanglish point 5"]
    },
    "improvements": ["Violent but helpful tip 1", "Violent but helpful tip 2", "Violent but helpful tip 3"]
}

Resume:
`

const atsPromptTemplate = `
Act as an Application Tracking System (ATS) Expert.
Analyze this resume for keyword optimization, formatting issues, and readability.

IMPORTANT: You must return ONLY valid JSON.
Format:
{ "ats_score": 0, "keywords_found": ["kw1", "kw2"], "missing_important_keywords": ["kw1", "kw2"], "formatting_issues": ["issue1"], "summary": "..." }

Resume:
`

// RoastPrompt builds the roast instruction with the resume text appended.
func RoastPrompt(resumeText string) string {
	return roastPromptTemplate + truncate(resumeText, maxPromptChars)
}

// ATSPrompt builds the ATS evaluation instruction with the resume text appended.
func ATSPrompt(resumeText string) string {
	return atsPromptTemplate + truncate(resumeText, maxPromptChars)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
