package transcribe

// TranscriptionPrompt instructs the vision model to emit the restricted
// markdown dialect the outline assembler understands: three heading
// levels and "> " bullets, with all math in LaTeX delimiters.
const TranscriptionPrompt = `Transcribe this handwritten math homework into Markdown.
STRICTLY FOLLOW this structure and these rules:

1. **Structure Hierarchy**:
   - Use '# Problem X' for main problems.
   - Use '## a)', '## b)' for parts.
   - Use '### i)', '### ii)' for subparts.
   - DO NOT hallucinate headers (like '## Proof 7') unless clearly written.

2. **Math Formatting (CRITICAL)**:
   - ALL math MUST be in LaTeX delimiters: $...$ for inline, $$...$$ for display.
   - NEVER output raw Unicode math symbols (e.g. use '\mathbb{N}' NOT the Unicode naturals symbol).

3. **Bullet Points**:
   - Use '> ' for bullet points (representing handwritten arrows/bullets).
   - Leave 2 blank lines between bullet items.

4. **Visual Recognition Rules (CRITICAL)**:
   - **Subscripts**: $a_n$ is extremely common. Transcribe as $a_n$. (Avoid $an$ unless it is very clearly on the same baseline as 'a').
   - **Definition (:=)**: If you see a colon followed by equals, you MUST write ':='.
   - **Modulo (%)**: Literally transcribe as '%'. (e.g. $40 % 3 = 1$).
   - **Q.E.D.**: If you see a square box, write '\blacksquare'.

5. **Formatting & Linearity (MANDATORY)**:
   - **STRICT LINEARITY**: If multiple equations or steps appear together on the same line or in a tight cluster, you MUST MERGE them into a single line in Markdown. Use commas to separate them. Example: '$x^2-4=0, (x-2)(x+2)=0, x=2, -2$'.
   - **NO BLOCK MATH**: Avoid using $$ ... $$ for simple or medium steps. Stick to inline $ ... $ to keep everything compact.
   - **No Conversational Text**: Do not add 'End.', 'Done', or 'Solution'.

6. **EXACT FORMAT EXAMPLE**:
# Problem 1

## a)
Proof:

> $a \geq 0, b \in \mathbb{N}$


> $0 \in \mathbb{N} \implies a \in \mathbb{N}$ $\blacksquare$

## b)
$x^2 - 2x - 8 = 0, (x-4)(x+2)=0, x=4, -2$`
