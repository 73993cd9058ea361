package analysis

const gapAnalysisPrompt = `**Task:** Analyze the provided Resume against the Job Description (JD) and identify key gaps.

**Context:** You are an expert career coach specializing in resume optimization. The goal is to find areas where the resume falls short of the JD's requirements.

**Instructions:**
1. Carefully read both the Resume Text and the Job Description Text provided below.
2. Compare the candidate's qualifications (skills, experience, responsibilities, education) outlined in the resume against the requirements specified in the job description.
3. Identify specific, significant gaps. Categorize these gaps clearly (e.g., Missing Hard Skill, Underrepresented Soft Skill, Responsibility Mismatch, Experience Level Gap, Missing Keywords, Education/Certification Gap).
4. For each identified gap, provide a brief, clear explanation of the discrepancy (e.g., "JD requires 5+ years of Python, resume shows 2 years").
5. Focus on actionable insights. Avoid generic statements.
6. Format your output using Markdown for readability (use headings for categories, bullet points for gaps).

**Resume Text:**
` + "```" + `
%s
` + "```" + `

**Job Description Text:**
` + "```" + `
%s
` + "```" + `

**Output:** Start your response directly with the gap analysis using Markdown formatting.
`

const actionPlanPrompt = `**Task:** Generate a personalized action plan based on identified resume gaps.

**Context:** You are an expert career coach. Based only on the Gap Analysis provided below, create a concrete, actionable plan for the candidate to improve their resume and profile for the target job.

**Instructions:**
1. Review the Gap Analysis provided.
2. For each major gap category identified, suggest 1-3 specific, practical actions the candidate can take.
3. Action items should focus on:
   * **Resume Updates:** Suggest specific wording changes, how to rephrase bullet points, or sections to add/enhance (emphasize truthful representation).
   * **Skill Development:** Recommend types of resources (e.g., specific online courses, certifications, project ideas, books, communities) relevant to the missing skills.
   * **Experience Acquisition:** Suggest ways to gain relevant experience (e.g., volunteering, freelance work, internal projects, seeking specific responsibilities in the current role).
   * **Keyword Integration:** Advise on naturally incorporating missing keywords where appropriate and accurate.
4. Keep the tone constructive and encouraging.
5. Format the action plan as a numbered list using Markdown.

**Identified Gap Analysis:**
` + "```markdown" + `
%s
` + "```" + `

**Output:** Start your response directly with the Action Plan using Markdown numbered list format.
`
