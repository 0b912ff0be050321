package ai

import "fmt"

// Prompt templates for the writing-assistant operations. Each renders a
// fixed instruction block around the caller-supplied material; the model is
// asked to return markdown only, with no commentary.

func generatePostPrompt(topic, keywords, tone string) string {
	if keywords == "" {
		keywords = "N/A"
	}
	if tone == "" {
		tone = "professional"
	}
	return fmt.Sprintf(`You are a professional blog writer. Generate a complete, well-structured blog post in markdown format.

Topic: %s
Keywords: %s
Tone: %s

Requirements:
- Write a comprehensive blog post (800-1500 words)
- Use proper markdown formatting with headers (##, ###), lists, bold, italic, code blocks where appropriate
- Include an engaging introduction
- Use clear section headers
- Add a conclusion
- Make it informative and engaging
- Naturally incorporate the keywords if provided
- Use the specified tone

Return ONLY the markdown content, no additional commentary.`, topic, keywords, tone)
}

func improveSectionPrompt(content, instructions string) string {
	if instructions == "" {
		instructions = "Make it more engaging and professional"
	}
	return fmt.Sprintf(`You are a professional editor. Improve the following content based on the instructions provided.

Content to improve:
%s

Instructions: %s

Requirements:
- Maintain markdown formatting
- Keep the core message
- Improve clarity, flow, and engagement
- Fix any grammatical issues
- Make it more compelling

Return ONLY the improved markdown content, no additional commentary.`, content, instructions)
}

func generateOutlinePrompt(topic string, sections int) string {
	if sections <= 0 {
		sections = 5
	}
	return fmt.Sprintf(`You are a professional content strategist. Create a detailed blog post outline.

Topic: %s
Number of main sections: %d

Requirements:
- Create a structured outline with main sections and subsections
- Use markdown format with proper headers (##, ###)
- Include an introduction and conclusion
- Make each section title descriptive and engaging
- Add brief notes under each section about what to cover

Return ONLY the outline in markdown format, no additional commentary.`, topic, sections)
}

func continueWritingPrompt(existingContent, direction string) string {
	directionLine := ""
	if direction != "" {
		directionLine = fmt.Sprintf("Direction: %s\n\n", direction)
	}
	return fmt.Sprintf(`You are a professional blog writer. Continue writing the blog post based on the existing content.

Existing content:
%s

%sRequirements:
- Continue seamlessly from where the content left off
- Maintain the same tone and style
- Use proper markdown formatting
- Write 200-400 words
- Make it flow naturally with the existing content

Return ONLY the continuation in markdown format, no additional commentary.`, existingContent, directionLine)
}

func generateTagsPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following blog post content and suggest 5-8 relevant tags/keywords.

Content:
%s

Requirements:
- Suggest 5-8 relevant tags
- Make them specific and searchable
- Use lowercase
- Separate with commas

Return ONLY the comma-separated tags, no additional commentary.`, content)
}
