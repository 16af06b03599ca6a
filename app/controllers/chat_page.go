package controllers

// chatPageHTML is the embedded chat widget served at GET /chat.
const chatPageHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Learning Tutor</title>
  <style>
    body { font-family: sans-serif; max-width: 600px; margin: 2rem auto; padding: 0 1rem; }
    #messages { border: 1px solid #ccc; border-radius: 6px; height: 400px; overflow-y: auto; padding: 1rem; }
    .msg { margin: 0.5rem 0; padding: 0.5rem 0.75rem; border-radius: 6px; max-width: 80%; }
    .user { background: #d0e7ff; margin-left: auto; }
    .ai { background: #eee; }
    #compose { display: flex; gap: 0.5rem; margin-top: 1rem; }
    #input { flex: 1; padding: 0.5rem; }
  </style>
</head>
<body>
  <h2>Learning Tutor</h2>
  <div id="messages"></div>
  <form id="compose">
    <input id="input" autocomplete="off" placeholder="Ask a question...">
    <button type="submit">Send</button>
  </form>
  <script>
    const sessionId = crypto.randomUUID();
    const messages = document.getElementById('messages');
    const form = document.getElementById('compose');
    const input = document.getElementById('input');

    function addMessage(text, cls) {
      const div = document.createElement('div');
      div.className = 'msg ' + cls;
      div.textContent = text;
      messages.appendChild(div);
      messages.scrollTop = messages.scrollHeight;
    }

    form.addEventListener('submit', async (e) => {
      e.preventDefault();
      const text = input.value.trim();
      if (!text) return;
      addMessage(text, 'user');
      input.value = '';
      try {
        const res = await fetch('/api/chat', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ message: text, session_id: sessionId })
        });
        const data = await res.json();
        addMessage(data.response || data.error || 'No response', 'ai');
      } catch (err) {
        addMessage('Connection error. Please try again.', 'ai');
      }
    });
  </script>
</body>
</html>`
