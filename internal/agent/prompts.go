package agent

import (
	"github.com/tmc/langchaingo/prompts"
)

// Prompt templates use Go template syntax. Values are substituted once and
// never re-parsed, so source code containing braces is safe.

var docsPrompt = prompts.NewPromptTemplate(`You are an expert software engineer and technical writer. Write complete, professional documentation for the code below.

File: {{.file_path}}

Code Structure:
{{.structure}}

Source Code:
`+"```"+`
{{.code}}
`+"```"+`

Use this structure:

# {{.file_path}}

## Overview
A short summary of what the file does and its role in the project.

## Components
For each class and function give:
- **Name and Signature**: the full signature, with types where known
- **Purpose**: one or two sentences
- **Parameters**: each parameter with its type and meaning
- **Returns**: what is returned and when
- **Example Usage**: a realistic snippet
- **Notes**: edge cases and gotchas

## Usage Examples
Two or three realistic examples, from basic to advanced.

Format code with language-specific syntax highlighting. Be specific and accurate; avoid generic statements.
`, []string{"file_path", "structure", "code"})

var analysisPrompt = prompts.NewPromptTemplate(`You are a senior code reviewer and software architect. Analyze the quality of the code below.

File: {{.file_path}}

Source Code:
`+"```"+`
{{.code}}
`+"```"+`

Report in this structure:

# Code Quality Analysis: {{.file_path}}

## Summary
Overall quality in one or two sentences.

## Issues Found

### 🔴 Critical Issues
Security vulnerabilities, major bugs, data-loss risks. For each: **Issue**, **Impact**, **Fix**.

### 🟡 Code Smells
Anti-patterns and design problems. For each: **Smell**, **Location**, **Refactoring**.

### 🟢 Performance Concerns
For each: **Issue**, **Impact**, **Optimization**.

## Best Practices Violations
Language-specific best practices that are not followed.

## Recommendations
1. **High Priority**
2. **Medium Priority**
3. **Low Priority**

## Positive Aspects
What is done well.

Cite line numbers or snippets where possible and keep every suggestion actionable.
`, []string{"file_path", "code"})

var repoDocsPrompt = prompts.NewPromptTemplate(`You are a senior software architect and technical writer. Write project documentation for the repository below.

Repository Content:
{{.repo_content}}

Use this structure:

# Project Documentation

## Executive Summary
- **Purpose**: the problem the project solves
- **Key Features**: the top three to five
- **Tech Stack**: the main technologies

## Architecture Overview

### System Design
The overall architecture style.

### Key Components
For each major module: **Component Name**, **Dependencies**, **Interactions**.

### Data Flow
How data moves through the system.

## Module Documentation
For each significant file or module: **Purpose**, **Key Classes/Functions**, **Usage**.

## Getting Started

### Prerequisites
Required dependencies and setup.

### Quick Start
Step-by-step usage.

## API Reference
Public APIs, endpoints or interfaces, if any.

## Design Patterns
Patterns in use and why they fit.

## Best Practices
Good practices the codebase follows.

Be thorough but concise and focus on what a new developer needs.
`, []string{"repo_content"})

var repoAnalysisPrompt = prompts.NewPromptTemplate(`You are a senior software architect and security expert. Review the whole repository below.

Repository Content:
{{.repo_content}}

Report in this structure:

# Project Code Quality Report

## Executive Summary
- **Overall Quality Score**: 1-10 with justification
- **Critical Issues**: how many
- **Main Concerns**: the top three areas

## Architectural Analysis

### Design Quality
**Strengths**, **Weaknesses**, **Suggestions**.

### Code Organization
**Modularity**, **Coupling**, **Cohesion**.

## Security Analysis

### 🔴 Critical Security Issues
For each: **Vulnerability**, **Location**, **Risk**, **Fix**.

### Security Best Practices
Adherence to common security standards.

## Code Quality Issues

### Patterns and Anti-Patterns
**Good Patterns** and **Anti-Patterns**.

### Code Smells by Category
**Duplication**, **Complexity**, **Naming**, **Error Handling**.

## Performance Analysis
**Bottlenecks**, **Optimizations**, **Scalability**.

## Testing and Quality Assurance
**Test Coverage**, **Missing Tests**, **Test Quality**.

## Maintainability
**Documentation**, **Readability**, **Extensibility**.

## Recommendations

### Immediate Actions (High Priority)
### Short-term Improvements (Medium Priority)
### Long-term Enhancements (Low Priority)

## Positive Highlights
What is done exceptionally well.

Be specific and constructive, with code examples where they help.
`, []string{"repo_content"})
